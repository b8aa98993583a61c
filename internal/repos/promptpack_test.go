package repos

import (
	"reflect"
	"testing"
)

func TestListingFilterCategoryTerms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "empty slice means no filter", in: nil, want: nil},
		{name: "all sentinel alone means no filter", in: []string{"All"}, want: nil},
		{name: "blanks are dropped", in: []string{"", "  ", "Writing"}, want: []string{"Writing"}},
		{name: "sentinel dropped among real terms", in: []string{"All", "Writing", "Programming"}, want: []string{"Writing", "Programming"}},
		{name: "terms pass through", in: []string{"Web3", "Gaming"}, want: []string{"Web3", "Gaming"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ListingFilter{Categories: tc.in}.CategoryTerms()
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("CategoryTerms: got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestListingFilterModelTerm(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "All", want: ""},
		{in: "  GPT-4  ", want: "GPT-4"},
		{in: "Claude 3", want: "Claude 3"},
	}
	for _, tc := range cases {
		if got := (ListingFilter{AIModel: tc.in}).ModelTerm(); got != tc.want {
			t.Fatalf("ModelTerm(%q): got=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestListingFilterPriceFilter(t *testing.T) {
	t.Parallel()

	full := ListingFilter{PriceMin: DefaultPriceMin, PriceMax: DefaultPriceMax}
	if full.HasPriceFilter() {
		t.Fatalf("full range should not apply a price predicate")
	}

	narrowed := ListingFilter{PriceMin: 10, PriceMax: 100}
	if !narrowed.HasPriceFilter() {
		t.Fatalf("narrowed lower bound should apply a price predicate")
	}

	capped := ListingFilter{PriceMin: 0, PriceMax: 50}
	if !capped.HasPriceFilter() {
		t.Fatalf("narrowed upper bound should apply a price predicate")
	}
}

func TestListingFilterZeroValueSelectsEverything(t *testing.T) {
	t.Parallel()

	zero := ListingFilter{}
	if zero.HasPriceFilter() {
		t.Fatalf("zero-value filter must not apply a price predicate")
	}
	if terms := zero.CategoryTerms(); len(terms) != 0 {
		t.Fatalf("zero-value filter must not apply category terms, got %v", terms)
	}
	if m := zero.ModelTerm(); m != "" {
		t.Fatalf("zero-value filter must not apply a model term, got %q", m)
	}
	if s := zero.SearchTerm(); s != "" {
		t.Fatalf("zero-value filter must not apply a search term, got %q", s)
	}
}

func TestListingFilterSearchTerm(t *testing.T) {
	t.Parallel()

	if got := (ListingFilter{Search: "   "}).SearchTerm(); got != "" {
		t.Fatalf("whitespace search should be inactive, got %q", got)
	}
	if got := (ListingFilter{Search: " chatbot "}).SearchTerm(); got != "chatbot" {
		t.Fatalf("search term should be trimmed, got %q", got)
	}
}
