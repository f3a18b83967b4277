package catalog

import (
	"github.com/timelessstrands/storefront-backend/pkg/pagination"
)

// ProductListFilters describe the supported filter knobs for the browse endpoint.
type ProductListFilters struct {
	Category string `json:"category,omitempty"`
	Featured *bool  `json:"featured,omitempty"`
	Query    string `json:"q,omitempty"`
}

// ListProductsInput captures the inputs needed to paginate/filter the catalog.
type ListProductsInput struct {
	Filters         ProductListFilters
	Pagination      pagination.Params
	IncludeInactive bool
}
