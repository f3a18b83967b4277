package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/timelessstrands/storefront-backend/api/responses"
	"github.com/timelessstrands/storefront-backend/api/validators"
	"github.com/timelessstrands/storefront-backend/internal/media"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
	"github.com/timelessstrands/storefront-backend/pkg/logger"
)

type presignMediaRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
}

type attachMediaRequest struct {
	MediaURL     string `json:"media_url,omitempty"`
	ObjectKey    string `json:"object_key,omitempty"`
	ContentType  string `json:"content_type" validate:"required"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
}

type reorderMediaRequest struct {
	MediaIDs []string `json:"media_ids" validate:"required,min=1,dive,required"`
}

// AdminMediaPresign mints a signed PUT URL for a direct-to-bucket upload.
func AdminMediaPresign(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload presignMediaRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ticket, err := svc.CreateUploadURL(r.Context(), media.CreateUploadInput{
			FileName:    strings.TrimSpace(payload.FileName),
			ContentType: strings.TrimSpace(payload.ContentType),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ticket)
	}
}

// AdminMediaList returns a product's gallery in display order.
func AdminMediaList(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListByProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"media": rows})
	}
}

// AdminMediaAttach binds an uploaded object or external URL to a product.
func AdminMediaAttach(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload attachMediaRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Attach(r.Context(), media.AttachInput{
			ProductID:    productID,
			MediaURL:     strings.TrimSpace(payload.MediaURL),
			ObjectKey:    strings.TrimSpace(payload.ObjectKey),
			ContentType:  strings.TrimSpace(payload.ContentType),
			DisplayOrder: payload.DisplayOrder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// AdminMediaDetach removes a gallery entry and its backing object.
func AdminMediaDetach(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "mediaId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Detach(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminMediaReorder rewrites the gallery display order from the posted ids.
func AdminMediaReorder(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload reorderMediaRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ids := make([]uuid.UUID, 0, len(payload.MediaIDs))
		for _, raw := range payload.MediaIDs {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid media id"))
				return
			}
			ids = append(ids, id)
		}

		rows, err := svc.Reorder(r.Context(), productID, ids)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"media": rows})
	}
}
