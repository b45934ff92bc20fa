package catalog

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"wholesale-be/internal/product"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func ids(products []product.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func scenarioProducts() []product.Product {
	return []product.Product{
		{ID: "1", Name: "Pepsi Can", Brand: "Pepsi", Category: "Beverages", Price: decimal.NewFromInt(10), Stock: 5},
		{ID: "2", Name: "Coke Can", Brand: "Coke", Category: "Beverages", Price: decimal.NewFromInt(20), Stock: 0},
	}
}

func sampleProducts() []product.Product {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	return []product.Product{
		{ID: "a", Name: "Lay's Chips", Brand: "Pepsi", Category: "Snacks", Subcategory: "Chips", Price: decimal.RequireFromString("24.00"), Stock: 10, CreatedAt: day(3)},
		{ID: "b", Name: "Coke Zero", Brand: "Coca-Cola", Category: "Beverages", Subcategory: "Soft Drinks", Price: decimal.RequireFromString("11.25"), Stock: 0, CreatedAt: day(9)},
		{ID: "c", Name: "Aquafina", Brand: "Pepsi", Category: "Beverages", Subcategory: "Water", Price: decimal.RequireFromString("6.99"), Stock: 100, CreatedAt: day(1)},
		{ID: "d", Name: "KitKat", Brand: "Nestlé", Category: "Snacks", Subcategory: "Confectionery", Price: decimal.RequireFromString("24"), Stock: 0, CreatedAt: day(5)},
		{ID: "e", Name: "Nescafé", Brand: "Nestlé", Category: "Beverages", Subcategory: "Coffee", Price: decimal.RequireFromString("42"), Stock: 3},
	}
}

func TestQuery_Scenarios(t *testing.T) {
	products := scenarioProducts()

	t.Run("BrandFilter", func(t *testing.T) {
		got := Query(products, FilterSpec{Brands: NewSet("Pepsi")})
		assert.Equal(t, []string{"1"}, ids(got))
	})

	t.Run("BothStatusesIsNoFilter", func(t *testing.T) {
		spec := FilterSpec{Statuses: NewSet(product.StatusInStock, product.StatusPreOrder)}
		got := Query(products, spec)
		assert.Equal(t, products, got)
	})

	t.Run("InStockOnly", func(t *testing.T) {
		got := Query(products, FilterSpec{Statuses: NewSet(product.StatusInStock)})
		assert.Equal(t, []string{"1"}, ids(got))
	})

	t.Run("PreOrderOnly", func(t *testing.T) {
		got := Query(products, FilterSpec{Statuses: NewSet(product.StatusPreOrder)})
		assert.Equal(t, []string{"2"}, ids(got))
	})

	t.Run("EmptyInput", func(t *testing.T) {
		got := Query(nil, FilterSpec{Brands: NewSet("Pepsi")})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestQuery_Dimensions(t *testing.T) {
	products := sampleProducts()

	cases := []struct {
		name string
		spec FilterSpec
		want []string
	}{
		{"empty spec", FilterSpec{}, []string{"a", "b", "c", "d", "e"}},
		{"empty sets are inclusive", FilterSpec{Brands: NewSet[string](), Categories: NewSet[string]()}, []string{"a", "b", "c", "d", "e"}},
		{"brand set", FilterSpec{Brands: NewSet("Nestlé", "Coca-Cola")}, []string{"b", "d", "e"}},
		{"category", FilterSpec{Categories: NewSet("Snacks")}, []string{"a", "d"}},
		{"min price inclusive", FilterSpec{Price: PriceRange{Min: dec("24")}}, []string{"a", "d", "e"}},
		{"max price inclusive", FilterSpec{Price: PriceRange{Max: dec("11.25")}}, []string{"b", "c"}},
		{"price window", FilterSpec{Price: PriceRange{Min: dec("7"), Max: dec("24")}}, []string{"a", "b", "d"}},
		{"inverted range matches nothing", FilterSpec{Price: PriceRange{Min: dec("30"), Max: dec("10")}}, []string{}},
		{"text on name", FilterSpec{Query: "KIT"}, []string{"d"}},
		{"text on brand", FilterSpec{Query: "pepsi"}, []string{"a", "c"}},
		{"text on category", FilterSpec{Query: "bever"}, []string{"b", "c", "e"}},
		{"text is unicode aware", FilterSpec{Query: "NESCAFÉ"}, []string{"e"}},
		{"text ignores subcategory", FilterSpec{Query: "confectionery"}, []string{}},
		{"conjunction", FilterSpec{Brands: NewSet("Pepsi"), Categories: NewSet("Beverages"), Statuses: NewSet(product.StatusInStock)}, []string{"c"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Query(products, tc.spec)))
		})
	}
}

func TestEngine_Classifier(t *testing.T) {
	products := sampleProducts()

	bySub := NewEngine(BySubcategory)
	got := bySub.Query(products, FilterSpec{Categories: NewSet("Water", "Chips")})
	assert.Equal(t, []string{"a", "c"}, ids(got))

	byCat := NewEngine(nil)
	got = byCat.Query(products, FilterSpec{Categories: NewSet("Water")})
	assert.Empty(t, got)
}

func TestQuery_Sorting(t *testing.T) {
	products := sampleProducts()

	cases := []struct {
		key  SortKey
		want []string
	}{
		{SortFeatured, []string{"a", "b", "c", "d", "e"}},
		{"", []string{"a", "b", "c", "d", "e"}},
		{SortPriceAsc, []string{"c", "b", "a", "d", "e"}},
		{SortPriceDesc, []string{"e", "a", "d", "b", "c"}},
		{SortNameAsc, []string{"c", "b", "d", "a", "e"}},
		{SortNewest, []string{"b", "d", "a", "c", "e"}},
	}

	for _, tc := range cases {
		t.Run(string(tc.key), func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Query(products, FilterSpec{Sort: tc.key})))
		})
	}
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	before := ids(products)

	_ = Query(products, FilterSpec{Sort: SortPriceDesc})

	assert.Equal(t, before, ids(products))
}

func randomProducts(r *rand.Rand, n int) []product.Product {
	brands := []string{"Pepsi", "Coke", "Nestle", "Unilever"}
	categories := []string{"Beverages", "Snacks", "Household"}
	out := make([]product.Product, n)
	for i := range out {
		out[i] = product.Product{
			ID:        fmt.Sprintf("p%d", i),
			Name:      fmt.Sprintf("Item %c", 'A'+r.Intn(6)),
			Brand:     brands[r.Intn(len(brands))],
			Category:  categories[r.Intn(len(categories))],
			Price:     decimal.New(int64(r.Intn(5000)), -2),
			Stock:     r.Intn(3),
			CreatedAt: time.Unix(int64(r.Intn(4))*86400, 0),
		}
	}
	return out
}

func randomSpec(r *rand.Rand) FilterSpec {
	spec := FilterSpec{
		Brands:     NewSet[string](),
		Categories: NewSet[string](),
		Statuses:   NewSet[product.Status](),
		Sort:       []SortKey{SortFeatured, SortPriceAsc, SortPriceDesc, SortNewest, SortNameAsc}[r.Intn(5)],
	}
	if r.Intn(2) == 0 {
		spec.Brands["Pepsi"] = struct{}{}
	}
	if r.Intn(2) == 0 {
		spec.Categories["Snacks"] = struct{}{}
	}
	if r.Intn(3) == 0 {
		spec.Statuses[product.StatusInStock] = struct{}{}
	}
	if r.Intn(2) == 0 {
		spec.Price.Min = dec("10")
	}
	if r.Intn(2) == 0 {
		spec.Query = "item b"
	}
	return spec
}

func TestQuery_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		products := randomProducts(r, r.Intn(40))
		spec := randomSpec(r)

		got := Query(products, spec)

		// identity under the empty spec
		require.Equal(t, products, Query(products, FilterSpec{}))

		// subset
		for _, p := range got {
			found, ok := product.FindByID(products, p.ID)
			require.True(t, ok)
			require.Equal(t, found, p)
		}

		// idempotence
		require.Equal(t, got, Query(got, spec))

		// stability: equal keys keep input order
		if spec.Sort == SortPriceAsc {
			for j := 1; j < len(got); j++ {
				if got[j-1].Price.Equal(got[j].Price) {
					require.Less(t, indexOf(products, got[j-1].ID), indexOf(products, got[j].ID))
				}
			}
		}
	}
}

func indexOf(products []product.Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func TestPriceRange_Validate(t *testing.T) {
	assert.NoError(t, PriceRange{}.Validate())
	assert.NoError(t, PriceRange{Min: dec("1")}.Validate())
	assert.NoError(t, PriceRange{Min: dec("5"), Max: dec("5")}.Validate())
	assert.ErrorIs(t, PriceRange{Min: dec("6"), Max: dec("5")}.Validate(), ErrInvalidPriceRange)
}
