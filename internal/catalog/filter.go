package catalog

import (
	"cmp"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/nikolayk812/neon-eshop/internal/domain"
	"github.com/shopspring/decimal"
)

type Sort string

const (
	SortFeatured  Sort = "featured"
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortNameAsc   Sort = "name-asc"
	SortNameDesc  Sort = "name-desc"
	SortNewest    Sort = "newest"
	SortRating    Sort = "rating"
)

var sorts = []Sort{SortFeatured, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortNewest, SortRating}

var (
	DefaultMinPrice = decimal.Zero
	DefaultMaxPrice = decimal.NewFromInt(100)
)

// Query is the product listing state carried in the URL.
type Query struct {
	Categories []string
	Platforms  []string
	Genres     []string
	MinPrice   decimal.Decimal
	MaxPrice   decimal.Decimal
	Search     string
	Sort       Sort
}

func DefaultQuery() Query {
	return Query{
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
		Sort:     SortFeatured,
	}
}

// ParseQuery reads a Query from URL values. Unknown sorts fall back to featured;
// malformed prices are an error.
func ParseQuery(values url.Values) (Query, error) {
	q := DefaultQuery()

	q.Categories = splitList(values.Get("category"))
	q.Platforms = splitList(values.Get("platform"))
	q.Genres = splitList(values.Get("genre"))
	q.Search = strings.ToLower(strings.TrimSpace(values.Get("search")))

	if v := values.Get("min"); v != "" {
		low, err := decimal.NewFromString(v)
		if err != nil {
			return Query{}, fmt.Errorf("min[%s]: %w", v, err)
		}
		q.MinPrice = low
	}
	if v := values.Get("max"); v != "" {
		high, err := decimal.NewFromString(v)
		if err != nil {
			return Query{}, fmt.Errorf("max[%s]: %w", v, err)
		}
		q.MaxPrice = high
	}

	if s := Sort(values.Get("sort")); slices.Contains(sorts, s) {
		q.Sort = s
	}

	return q, nil
}

// Encode returns the canonical query string; defaults are omitted.
func (q Query) Encode() string {
	values := url.Values{}
	if len(q.Categories) > 0 {
		values.Set("category", strings.Join(q.Categories, ","))
	}
	if len(q.Platforms) > 0 {
		values.Set("platform", strings.Join(q.Platforms, ","))
	}
	if len(q.Genres) > 0 {
		values.Set("genre", strings.Join(q.Genres, ","))
	}
	if !q.MinPrice.Equal(DefaultMinPrice) {
		values.Set("min", q.MinPrice.String())
	}
	if !q.MaxPrice.Equal(DefaultMaxPrice) {
		values.Set("max", q.MaxPrice.String())
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Sort != "" && q.Sort != SortFeatured {
		values.Set("sort", string(q.Sort))
	}
	return values.Encode()
}

func (q Query) Match(p domain.Product) bool {
	if len(q.Categories) > 0 && !containsFold(q.Categories, p.Category) {
		return false
	}
	if len(q.Platforms) > 0 && !containsFold(q.Platforms, p.Platform) {
		return false
	}
	if len(q.Genres) > 0 && !slices.ContainsFunc(p.Genres, func(g string) bool { return containsFold(q.Genres, g) }) {
		return false
	}
	if p.Price.Amount.LessThan(q.MinPrice) || p.Price.Amount.GreaterThan(q.MaxPrice) {
		return false
	}
	if q.Search != "" {
		search := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Title), search) && !strings.Contains(strings.ToLower(p.Description), search) {
			return false
		}
	}
	return true
}

// Apply filters products by q and stable-sorts the result.
func Apply(products []domain.Product, q Query) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if q.Match(p) {
			result = append(result, p)
		}
	}

	slices.SortStableFunc(result, compareBy(q.Sort))
	return result
}

func compareBy(s Sort) func(a, b domain.Product) int {
	switch s {
	case SortPriceAsc:
		return func(a, b domain.Product) int { return a.Price.Amount.Cmp(b.Price.Amount) }
	case SortPriceDesc:
		return func(a, b domain.Product) int { return b.Price.Amount.Cmp(a.Price.Amount) }
	case SortNameAsc:
		return func(a, b domain.Product) int { return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) }
	case SortNameDesc:
		return func(a, b domain.Product) int { return cmp.Compare(strings.ToLower(b.Title), strings.ToLower(a.Title)) }
	case SortNewest:
		return func(a, b domain.Product) int { return b.ReleaseDate.Compare(a.ReleaseDate) }
	case SortRating:
		return func(a, b domain.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return func(a, b domain.Product) int { return cmp.Compare(boolRank(b.Featured), boolRank(a.Featured)) }
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsFold(list []string, v string) bool {
	return slices.ContainsFunc(list, func(s string) bool { return strings.EqualFold(s, v) })
}

// FormatRating renders a product rating with one decimal, e.g. "4.8".
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}
