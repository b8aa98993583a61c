package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/promptvault-backend/internal/repos"
)

func filterFor(t *testing.T, rawQuery string) (repos.ListingFilter, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/packs?"+rawQuery, nil)
	return filterFromQuery(c)
}

func TestFilterFromQueryDefaults(t *testing.T) {
	t.Parallel()

	filter, err := filterFor(t, "")
	if err != nil {
		t.Fatalf("filterFromQuery: %v", err)
	}
	if len(filter.Categories) != 0 {
		t.Fatalf("expected no categories, got %v", filter.Categories)
	}
	if filter.PriceMin != repos.DefaultPriceMin || filter.PriceMax != repos.DefaultPriceMax {
		t.Fatalf("expected default price range, got [%v, %v]", filter.PriceMin, filter.PriceMax)
	}
	if filter.HasPriceFilter() {
		t.Fatalf("default range must not count as a price filter")
	}
}

func TestFilterFromQueryParsesEverything(t *testing.T) {
	t.Parallel()

	filter, err := filterFor(t, "categories=Writing,Programming&ai_model=GPT-4&price_min=5&price_max=50&search=neon&sort=popular")
	if err != nil {
		t.Fatalf("filterFromQuery: %v", err)
	}
	if len(filter.Categories) != 2 || filter.Categories[0] != "Writing" || filter.Categories[1] != "Programming" {
		t.Fatalf("unexpected categories: %v", filter.Categories)
	}
	if filter.AIModel != "GPT-4" {
		t.Fatalf("unexpected ai_model: %q", filter.AIModel)
	}
	if filter.PriceMin != 5 || filter.PriceMax != 50 {
		t.Fatalf("unexpected price range: [%v, %v]", filter.PriceMin, filter.PriceMax)
	}
	if !filter.HasPriceFilter() {
		t.Fatalf("narrowed range must count as a price filter")
	}
	if filter.Search != "neon" || filter.Sort != repos.SortPopular {
		t.Fatalf("unexpected search/sort: %q %q", filter.Search, filter.Sort)
	}
}

func TestFilterFromQueryRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
	}{
		{name: "non-numeric price_min", query: "price_min=cheap"},
		{name: "non-numeric price_max", query: "price_max=lots"},
		{name: "inverted range", query: "price_min=60&price_max=10"},
		{name: "unknown sort", query: "sort=trending"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := filterFor(t, tc.query); err == nil {
				t.Fatalf("expected error for query %q", tc.query)
			}
		})
	}
}
