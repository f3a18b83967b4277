package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timelessstrands/storefront-backend/pkg/db/models"
)

func variantFixture(style, colour, inch, density, lace string, price int64, qty int) models.ProductVariant {
	return models.ProductVariant{
		ID:       uuid.New(),
		Style:    style,
		Colour:   colour,
		Inch:     inch,
		Density:  density,
		LaceSize: lace,
		Price:    decimal.NewFromInt(price),
		Quantity: qty,
		IsActive: true,
	}
}

func wigVariants() []models.ProductVariant {
	return []models.ProductVariant{
		variantFixture("Straight", "Black", "14", "180%", "4x4", 3000, 5),
		variantFixture("Straight", "Black", "16", "180%", "4x4", 3500, 2),
		variantFixture("Straight", "Brown", "14", "200%", "5x5", 4000, 0),
		variantFixture("Curly", "Black", "14", "180%", "4x4", 3200, 1),
	}
}

func TestSelectionIsComplete(t *testing.T) {
	t.Parallel()

	full := Selection{Style: "Straight", Colour: "Black", Inch: "14", Density: "180%", LaceSize: "4x4"}
	assert.True(t, full.IsComplete())

	partial := full
	partial.Density = ""
	assert.False(t, partial.IsComplete())

	assert.False(t, Selection{}.IsComplete())
}

func TestAxisValuesFirstOccurrenceOrder(t *testing.T) {
	t.Parallel()

	axes := AxisValues(wigVariants())

	assert.Equal(t, []string{"Straight", "Curly"}, axes.Styles)
	assert.Equal(t, []string{"Black", "Brown"}, axes.Colours)
	assert.Equal(t, []string{"14", "16"}, axes.Inches)
	assert.Equal(t, []string{"180%", "200%"}, axes.Densities)
	assert.Equal(t, []string{"4x4", "5x5"}, axes.LaceSizes)
}

func TestAxisValuesSkipsEmptyAndDuplicates(t *testing.T) {
	t.Parallel()

	variants := []models.ProductVariant{
		variantFixture("Wavy", "", "12", "180%", "4x4", 2500, 3),
		variantFixture("Wavy", "Blonde", "12", "180%", "4x4", 2500, 3),
	}
	axes := AxisValues(variants)

	assert.Equal(t, []string{"Wavy"}, axes.Styles)
	assert.Equal(t, []string{"Blonde"}, axes.Colours)
	assert.Equal(t, []string{"12"}, axes.Inches)
}

func TestResolveExactMatch(t *testing.T) {
	t.Parallel()

	sel := Selection{Style: "Straight", Colour: "Black", Inch: "14", Density: "180%", LaceSize: "4x4"}
	variant := Resolve(wigVariants(), sel)

	require.NotNil(t, variant)
	assert.True(t, variant.Price.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, 5, variant.Quantity)
}

func TestResolveNoMatch(t *testing.T) {
	t.Parallel()

	sel := Selection{Style: "Wavy", Colour: "Black", Inch: "14", Density: "180%", LaceSize: "4x4"}
	assert.Nil(t, Resolve(wigVariants(), sel))
}

func TestResolveIncompleteSelection(t *testing.T) {
	t.Parallel()

	sel := Selection{Style: "Straight", Colour: "Black", Inch: "14", Density: "180%"}
	assert.Nil(t, Resolve(wigVariants(), sel))
}

func TestResolveCaseSensitive(t *testing.T) {
	t.Parallel()

	sel := Selection{Style: "straight", Colour: "Black", Inch: "14", Density: "180%", LaceSize: "4x4"}
	assert.Nil(t, Resolve(wigVariants(), sel))
}

func TestResolveAmbiguousTuple(t *testing.T) {
	t.Parallel()

	variants := wigVariants()
	variants = append(variants, variantFixture("Straight", "Black", "14", "180%", "4x4", 2800, 3))

	sel := Selection{Style: "Straight", Colour: "Black", Inch: "14", Density: "180%", LaceSize: "4x4"}
	assert.Nil(t, Resolve(variants, sel))
}

func TestCanOrder(t *testing.T) {
	t.Parallel()

	variants := wigVariants()
	sel := Selection{Style: "Straight", Colour: "Black", Inch: "14", Density: "180%", LaceSize: "4x4"}

	assert.True(t, CanOrder(variants, sel, 1))
	assert.True(t, CanOrder(variants, sel, 5))
	assert.False(t, CanOrder(variants, sel, 6))
	assert.False(t, CanOrder(variants, sel, 0))
	assert.False(t, CanOrder(variants, sel, -2))

	incomplete := sel
	incomplete.LaceSize = ""
	assert.False(t, CanOrder(variants, incomplete, 1))
}

func TestCanOrderUntrackedStock(t *testing.T) {
	t.Parallel()

	variants := wigVariants()
	sel := Selection{Style: "Straight", Colour: "Brown", Inch: "14", Density: "200%", LaceSize: "5x5"}

	// quantity 0 means the variant does not track stock
	assert.True(t, CanOrder(variants, sel, 1))
	assert.True(t, CanOrder(variants, sel, 40))
	assert.False(t, CanOrder(variants, sel, 0))
}
