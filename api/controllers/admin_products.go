package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/timelessstrands/storefront-backend/api/responses"
	"github.com/timelessstrands/storefront-backend/api/validators"
	"github.com/timelessstrands/storefront-backend/internal/catalog"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
	"github.com/timelessstrands/storefront-backend/pkg/logger"
	"github.com/timelessstrands/storefront-backend/pkg/pagination"
)

type variantRequest struct {
	Style    string `json:"style" validate:"required"`
	Colour   string `json:"colour" validate:"required"`
	Inch     string `json:"inch" validate:"required"`
	Density  string `json:"density" validate:"required"`
	LaceSize string `json:"lace_size" validate:"required"`
	Price    string `json:"price" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=0"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type createProductRequest struct {
	Name        string           `json:"name" validate:"required,min=2,max=200"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category" validate:"required"`
	IsActive    *bool            `json:"is_active,omitempty"`
	IsFeatured  *bool            `json:"is_featured,omitempty"`
	Variants    []variantRequest `json:"variants" validate:"required,min=1,dive"`
}

type updateProductRequest struct {
	Name        *string           `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string           `json:"description,omitempty"`
	Category    *string           `json:"category,omitempty"`
	IsActive    *bool             `json:"is_active,omitempty"`
	IsFeatured  *bool             `json:"is_featured,omitempty"`
	Variants    *[]variantRequest `json:"variants,omitempty" validate:"omitempty,dive"`
}

// AdminProductList serves the back-office product list, inactive included.
func AdminProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		featured, err := validators.ParseQueryBool(r, "featured")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AdminListProducts(r.Context(), catalog.ListProductsInput{
			Filters: catalog.ProductListFilters{
				Category: validators.SanitizeString(r.URL.Query().Get("category"), 100),
				Featured: featured,
				Query:    validators.SanitizeString(r.URL.Query().Get("q"), 200),
			},
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdminProductDetail returns a product with every variant, active or not.
func AdminProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.AdminGetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminProductCreate handles product creation with the full variant matrix.
func AdminProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminProductUpdate applies a partial update; a variants array replaces
// the whole variant set.
func AdminProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminProductDelete removes a product and its variants.
func AdminProductDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func (p createProductRequest) toCreateInput() (catalog.CreateProductInput, error) {
	variants, err := toVariantInputs(p.Variants)
	if err != nil {
		return catalog.CreateProductInput{}, err
	}

	isActive := true
	if p.IsActive != nil {
		isActive = *p.IsActive
	}
	isFeatured := false
	if p.IsFeatured != nil {
		isFeatured = *p.IsFeatured
	}

	return catalog.CreateProductInput{
		Name:        strings.TrimSpace(p.Name),
		Description: strings.TrimSpace(p.Description),
		Category:    strings.TrimSpace(p.Category),
		IsActive:    isActive,
		IsFeatured:  isFeatured,
		Variants:    variants,
	}, nil
}

func (p updateProductRequest) toUpdateInput() (catalog.UpdateProductInput, error) {
	input := catalog.UpdateProductInput{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		IsActive:    p.IsActive,
		IsFeatured:  p.IsFeatured,
	}
	if p.Variants != nil {
		variants, err := toVariantInputs(*p.Variants)
		if err != nil {
			return catalog.UpdateProductInput{}, err
		}
		input.Variants = &variants
	}
	return input, nil
}

func toVariantInputs(requests []variantRequest) ([]catalog.VariantInput, error) {
	variants := make([]catalog.VariantInput, 0, len(requests))
	for _, req := range requests {
		price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant price")
		}
		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}
		variants = append(variants, catalog.VariantInput{
			Style:    strings.TrimSpace(req.Style),
			Colour:   strings.TrimSpace(req.Colour),
			Inch:     strings.TrimSpace(req.Inch),
			Density:  strings.TrimSpace(req.Density),
			LaceSize: strings.TrimSpace(req.LaceSize),
			Price:    price,
			Quantity: req.Quantity,
			IsActive: isActive,
		})
	}
	return variants, nil
}
