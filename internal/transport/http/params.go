package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"linguacademy/internal/catalog"
	"linguacademy/internal/domain"
)

// parseFilters maps search query parameters onto catalog.Filters. Empty
// parameters stay inactive; malformed ones are an error.
func parseFilters(c *gin.Context) (catalog.Filters, error) {
	f := catalog.Filters{
		Query:      c.Query("query"),
		Category:   c.Query("category"),
		Language:   c.Query("language"),
		Instructor: c.Query("instructor"),
	}
	if f.Query == "" {
		f.Query = c.Query("search")
	}

	if v := c.Query("level"); v != "" {
		f.Level = domain.Level(v)
		if !f.Level.Valid() {
			return f, fmt.Errorf("unknown level %q", v)
		}
	}

	minPrice, hasMin, err := floatParam(c, "minPrice")
	if err != nil {
		return f, err
	}
	maxPrice, hasMax, err := floatParam(c, "maxPrice")
	if err != nil {
		return f, err
	}
	if hasMin || hasMax {
		r := &catalog.PriceRange{Min: 0, Max: math.MaxFloat64}
		if hasMin {
			r.Min = minPrice
		}
		if hasMax {
			r.Max = maxPrice
		}
		if r.Min > r.Max {
			return f, fmt.Errorf("minPrice %v exceeds maxPrice %v", r.Min, r.Max)
		}
		f.PriceRange = r
	}

	rating, hasRating, err := floatParam(c, "rating")
	if err != nil {
		return f, err
	}
	if hasRating {
		f.MinRating = &rating
	}

	if v := c.Query("duration"); v != "" {
		f.Duration = catalog.DurationBucket(v)
		if !f.Duration.Valid() {
			return f, fmt.Errorf("unknown duration %q", v)
		}
	}

	for _, raw := range c.QueryArray("features") {
		for _, feat := range strings.Split(raw, ",") {
			if feat = strings.TrimSpace(feat); feat != "" {
				f.Features = append(f.Features, feat)
			}
		}
	}

	if v := c.Query("sortBy"); v != "" {
		f.SortBy = catalog.SortKey(v)
		if !f.SortBy.Valid() {
			return f, fmt.Errorf("unknown sortBy %q", v)
		}
	}
	switch v := catalog.SortOrder(c.DefaultQuery("sortOrder", string(catalog.SortAsc))); v {
	case catalog.SortAsc, catalog.SortDesc:
		f.SortOrder = v
	default:
		return f, fmt.Errorf("unknown sortOrder %q", v)
	}
	return f, nil
}

func floatParam(c *gin.Context, name string) (float64, bool, error) {
	v := c.Query(name)
	if v == "" {
		return 0, false, nil
	}
	x, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(x) {
		return 0, false, fmt.Errorf("%s must be a number", name)
	}
	return x, true, nil
}

// limitParam returns 0 (store default) when the limit is absent.
func limitParam(c *gin.Context) (int, error) {
	v := c.Query("limit")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("limit must be a non-negative integer")
	}
	return n, nil
}
