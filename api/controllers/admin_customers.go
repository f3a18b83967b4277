package controllers

import (
	"net/http"
	"strings"

	"github.com/timelessstrands/storefront-backend/api/responses"
	"github.com/timelessstrands/storefront-backend/api/validators"
	"github.com/timelessstrands/storefront-backend/internal/customers"
	"github.com/timelessstrands/storefront-backend/pkg/logger"
	"github.com/timelessstrands/storefront-backend/pkg/pagination"
)

// AdminCustomerList pages through the customer directory.
func AdminCustomerList(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdminCustomerDetail returns a customer with their order stats.
func AdminCustomerDetail(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customer)
	}
}
