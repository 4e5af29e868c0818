package catalog

import (
	"cmp"
	"slices"
	"strings"

	"linguacademy/internal/domain"
)

type SortKey string

const (
	SortPopularity   SortKey = "popularity"
	SortRating       SortKey = "rating"
	SortPrice        SortKey = "price"
	SortNewest       SortKey = "newest"
	SortAlphabetical SortKey = "alphabetical"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortPopularity, SortRating, SortPrice, SortNewest, SortAlphabetical:
		return true
	}
	return false
}

func compareBy(key SortKey) func(a, b domain.Course) int {
	switch key {
	case SortPopularity:
		return func(a, b domain.Course) int { return cmp.Compare(a.EnrollmentCount, b.EnrollmentCount) }
	case SortRating:
		return func(a, b domain.Course) int { return cmp.Compare(a.Rating, b.Rating) }
	case SortPrice:
		return func(a, b domain.Course) int { return cmp.Compare(a.Price, b.Price) }
	case SortNewest:
		return func(a, b domain.Course) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortAlphabetical:
		return func(a, b domain.Course) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	}
	return nil
}

// sortCourses stable-sorts cs in place. Desc flips the comparison, so equal keys
// keep their input order in both directions. Unknown keys leave cs untouched.
func sortCourses(cs []domain.Course, key SortKey, order SortOrder) {
	less := compareBy(key)
	if less == nil {
		return
	}
	if order == SortDesc {
		asc := less
		less = func(a, b domain.Course) int { return asc(b, a) }
	}
	slices.SortStableFunc(cs, less)
}
