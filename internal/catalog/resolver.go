package catalog

import "github.com/timelessstrands/storefront-backend/pkg/db/models"

// Selection pins one value per option axis of a wig product. A zero value
// on any axis means the shopper has not picked that axis yet.
type Selection struct {
	Style    string `json:"style"`
	Colour   string `json:"colour"`
	Inch     string `json:"inch"`
	Density  string `json:"density"`
	LaceSize string `json:"lace_size"`
}

// IsComplete reports whether every axis has a value.
func (s Selection) IsComplete() bool {
	return s.Style != "" && s.Colour != "" && s.Inch != "" && s.Density != "" && s.LaceSize != ""
}

// Axes lists the distinct values offered per axis, in the order they first
// appear in the variant list. Values are never narrowed by a partial
// selection; the storefront always shows the full option set.
type Axes struct {
	Styles    []string `json:"styles"`
	Colours   []string `json:"colours"`
	Inches    []string `json:"inches"`
	Densities []string `json:"densities"`
	LaceSizes []string `json:"lace_sizes"`
}

// AxisValues collects the distinct axis values across the given variants,
// preserving first-occurrence order.
func AxisValues(variants []models.ProductVariant) Axes {
	var axes Axes
	axes.Styles = distinct(variants, func(v models.ProductVariant) string { return v.Style })
	axes.Colours = distinct(variants, func(v models.ProductVariant) string { return v.Colour })
	axes.Inches = distinct(variants, func(v models.ProductVariant) string { return v.Inch })
	axes.Densities = distinct(variants, func(v models.ProductVariant) string { return v.Density })
	axes.LaceSizes = distinct(variants, func(v models.ProductVariant) string { return v.LaceSize })
	return axes
}

func distinct(variants []models.ProductVariant, pick func(models.ProductVariant) string) []string {
	seen := make(map[string]struct{}, len(variants))
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		val := pick(v)
		if val == "" {
			continue
		}
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		out = append(out, val)
	}
	return out
}

// Resolve finds the single variant matching the selection exactly
// (case-sensitive on every axis). It returns nil when the selection is
// incomplete, when no variant matches, or when more than one matches.
func Resolve(variants []models.ProductVariant, sel Selection) *models.ProductVariant {
	if !sel.IsComplete() {
		return nil
	}

	var found *models.ProductVariant
	for i := range variants {
		v := &variants[i]
		if v.Style != sel.Style || v.Colour != sel.Colour || v.Inch != sel.Inch ||
			v.Density != sel.Density || v.LaceSize != sel.LaceSize {
			continue
		}
		if found != nil {
			return nil
		}
		found = v
	}
	return found
}

// CanOrder reports whether qty units of the selected variant can be ordered.
// A variant with zero recorded quantity does not track stock, so any
// positive qty is allowed for it.
func CanOrder(variants []models.ProductVariant, sel Selection, qty int) bool {
	if qty < 1 {
		return false
	}
	variant := Resolve(variants, sel)
	if variant == nil {
		return false
	}
	if variant.Quantity == 0 {
		return true
	}
	return qty <= variant.Quantity
}
