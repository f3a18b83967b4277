package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/timelessstrands/storefront-backend/api/middleware"
	"github.com/timelessstrands/storefront-backend/api/responses"
	"github.com/timelessstrands/storefront-backend/api/validators"
	"github.com/timelessstrands/storefront-backend/internal/cart"
	"github.com/timelessstrands/storefront-backend/internal/catalog"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
	"github.com/timelessstrands/storefront-backend/pkg/logger"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Style     string `json:"style" validate:"required"`
	Colour    string `json:"colour" validate:"required"`
	Inch      string `json:"inch" validate:"required"`
	Density   string `json:"density" validate:"required"`
	LaceSize  string `json:"lace_size" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type updateCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	VariantID string `json:"variant_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"min=0"`
}

// CartCreate mints a fresh cart token. The storefront stores it client-side
// and presents it on every subsequent cart call.
func CartCreate(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := svc.NewToken()
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"token": token})
	}
}

// CartFetch returns the cart for the presented token. An unknown or expired
// token yields an empty cart rather than an error.
func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := requireCartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// CartAddItem resolves the selected variant server-side and merges it in.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := requireCartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.AddItem(r.Context(), token, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// CartUpdateItem sets the quantity of a line; zero removes it.
func CartUpdateItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := requireCartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := parseUUIDField(payload.ProductID, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		variantID, err := parseUUIDField(payload.VariantID, "variant_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.SetQuantity(r.Context(), token, productID, variantID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// CartRemoveItem drops a line from the cart.
func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := requireCartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		variantID, err := parseIDParam(r, "variantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.RemoveItem(r.Context(), token, productID, variantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// CartClear deletes the cart slot entirely.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := requireCartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Clear(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

func (p addCartItemRequest) toInput() (cart.AddItemInput, error) {
	productID, err := parseUUIDField(p.ProductID, "product_id")
	if err != nil {
		return cart.AddItemInput{}, err
	}
	return cart.AddItemInput{
		ProductID: productID,
		Selection: catalog.Selection{
			Style:    strings.TrimSpace(p.Style),
			Colour:   strings.TrimSpace(p.Colour),
			Inch:     strings.TrimSpace(p.Inch),
			Density:  strings.TrimSpace(p.Density),
			LaceSize: strings.TrimSpace(p.LaceSize),
		},
		Quantity: p.Quantity,
	}, nil
}

func requireCartToken(r *http.Request) (string, error) {
	if token := middleware.CartTokenFromContext(r.Context()); token != "" {
		return token, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "cart token header is required").
		WithDetails(map[string]any{"header": middleware.CartTokenHeader})
}

func parseUUIDField(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid identifier").WithDetails(map[string]any{"field": field})
	}
	return id, nil
}
