package catalog

import (
	"context"
	"strings"

	"linguacademy/internal/domain"
)

type PriceRange struct {
	Min float64
	Max float64
}

// Filters narrows SearchCourses. Zero values and nil pointers are inactive; active
// filters combine with AND.
type Filters struct {
	Query      string
	Category   string
	Level      domain.Level
	PriceRange *PriceRange
	MinRating  *float64
	Duration   DurationBucket
	Language   string
	Features   []string
	Instructor string // instructor id

	SortBy    SortKey
	SortOrder SortOrder
}

func (s *Store) SearchCourses(ctx context.Context, f Filters) []domain.Course {
	s.mu.RLock()
	sess := s.readSession(ctx)
	out := make([]domain.Course, 0, len(s.courses))
	for i := range s.courses {
		if f.matches(&s.courses[i]) {
			out = append(out, s.courseView(sess, i))
		}
	}
	s.mu.RUnlock()

	if f.SortBy != "" {
		sortCourses(out, f.SortBy, f.SortOrder)
	}
	return out
}

func (f Filters) matches(c *domain.Course) bool {
	if f.Query != "" && !matchesQuery(c, strings.ToLower(f.Query)) {
		return false
	}
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.Level != "" && c.Level != f.Level {
		return false
	}
	if f.PriceRange != nil && (c.Price < f.PriceRange.Min || c.Price > f.PriceRange.Max) {
		return false
	}
	if f.MinRating != nil && c.Rating < *f.MinRating {
		return false
	}
	if f.Duration != "" && !f.Duration.Contains(c.Duration) {
		return false
	}
	if f.Language != "" && c.Language != f.Language {
		return false
	}
	if len(f.Features) > 0 && !hasAnyFeature(c.Features, f.Features) {
		return false
	}
	if f.Instructor != "" && c.Instructor.ID != f.Instructor {
		return false
	}
	return true
}

// matchesQuery expects q already lower-cased.
func matchesQuery(c *domain.Course, q string) bool {
	if strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.Description), q) ||
		strings.Contains(strings.ToLower(c.Instructor.Name), q) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func hasAnyFeature(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
