package controllers

import (
	"net/http"

	"github.com/timelessstrands/storefront-backend/api/responses"
	"github.com/timelessstrands/storefront-backend/internal/settings"
	"github.com/timelessstrands/storefront-backend/pkg/logger"
)

// PublicSettings exposes the storefront-facing settings (store name,
// support contacts, payment rails). Internal keys are filtered server-side.
func PublicSettings(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := svc.PublicSettings(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"settings": values})
	}
}
