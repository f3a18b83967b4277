package controllers

import (
	"net/http"

	"github.com/timelessstrands/storefront-backend/api/responses"
	"github.com/timelessstrands/storefront-backend/api/validators"
	checkoutsvc "github.com/timelessstrands/storefront-backend/internal/checkout"
	"github.com/timelessstrands/storefront-backend/pkg/logger"
)

type placeOrderRequest struct {
	CustomerName    string `json:"customer_name" validate:"required,min=2,max=120"`
	CustomerPhone   string `json:"customer_phone" validate:"required"`
	CustomerEmail   string `json:"customer_email" validate:"omitempty,email"`
	CountyName      string `json:"county_name" validate:"required"`
	DeliveryAddress string `json:"delivery_address" validate:"required"`
}

// Checkout turns the presented cart into a pending order and returns the
// M-PESA payment instructions.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := requireCartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.PlaceOrder(r.Context(), token, checkoutsvc.PlaceOrderInput{
			CustomerName:    validators.SanitizeString(payload.CustomerName, 120),
			CustomerPhone:   validators.SanitizeString(payload.CustomerPhone, 20),
			CustomerEmail:   validators.SanitizeString(payload.CustomerEmail, 254),
			CountyName:      validators.SanitizeString(payload.CountyName, 100),
			DeliveryAddress: validators.SanitizeString(payload.DeliveryAddress, 500),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
