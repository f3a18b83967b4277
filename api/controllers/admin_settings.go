package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/timelessstrands/storefront-backend/api/responses"
	"github.com/timelessstrands/storefront-backend/api/validators"
	"github.com/timelessstrands/storefront-backend/internal/settings"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
	"github.com/timelessstrands/storefront-backend/pkg/logger"
)

type upsertSettingRequest struct {
	Key         string `json:"key" validate:"required,min=1,max=100"`
	Value       string `json:"value" validate:"required"`
	Description string `json:"description,omitempty"`
}

// AdminSettingList returns every stored setting row.
func AdminSettingList(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"settings": rows})
	}
}

// AdminSettingUpsert creates or overwrites a setting by key.
func AdminSettingUpsert(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload upsertSettingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setting, err := svc.Upsert(r.Context(), payload.Key, payload.Value, payload.Description)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, setting)
	}
}

// AdminSettingDelete removes a setting; payment fallbacks in config still apply.
func AdminSettingDelete(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(chi.URLParam(r, "key"))
		if key == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "setting key is required"))
			return
		}

		if err := svc.Delete(r.Context(), key); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
