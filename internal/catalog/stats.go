package catalog

import (
	"cmp"
	"context"
	"math"
	"slices"

	"linguacademy/internal/domain"
)

const (
	DefaultPopularLimit  = 6
	DefaultFeaturedLimit = 8
	RecommendedLimit     = 6
	FeaturedMinRating    = 4.7
)

type Stats struct {
	EnrollmentCount     int     `json:"enrollmentCount"`
	Rating              float64 `json:"rating"`
	CompletionRate      float64 `json:"completionRate"`
	EstimatedHours      int     `json:"estimatedHours"`
	SatisfactionPercent float64 `json:"satisfactionPercent"`
	CertificatesIssued  int     `json:"certificatesIssued"`
	Revenue             float64 `json:"revenue"`
}

func truncate(cs []domain.Course, limit int) []domain.Course {
	if limit >= 0 && len(cs) > limit {
		return cs[:limit]
	}
	return cs
}

func (s *Store) snapshotCourses(ctx context.Context, keep func(*domain.Course) bool) []domain.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := s.readSession(ctx)
	out := []domain.Course{}
	for i := range s.courses {
		if keep == nil || keep(&s.courses[i]) {
			out = append(out, s.courseView(sess, i))
		}
	}
	return out
}

// GetPopularCourses orders by enrollment count, most enrolled first. A non-positive
// limit falls back to DefaultPopularLimit.
func (s *Store) GetPopularCourses(ctx context.Context, limit int) []domain.Course {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	out := s.snapshotCourses(ctx, nil)
	sortCourses(out, SortPopularity, SortDesc)
	return truncate(out, limit)
}

func (s *Store) GetFeaturedCourses(ctx context.Context, limit int) []domain.Course {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	out := s.snapshotCourses(ctx, func(c *domain.Course) bool { return c.Rating >= FeaturedMinRating })
	sortCourses(out, SortRating, SortDesc)
	return truncate(out, limit)
}

func (s *Store) GetCoursesByCategory(ctx context.Context, category string) []domain.Course {
	return s.snapshotCourses(ctx, func(c *domain.Course) bool { return c.Category == category })
}

func (s *Store) GetCoursesByLevel(ctx context.Context, level domain.Level) []domain.Course {
	return s.snapshotCourses(ctx, func(c *domain.Course) bool { return c.Level == level })
}

// GetRecommendedCourses ranks highly rated courses by rating x enrollment count.
// The ranking is global: userID is accepted for callers that pass one and ignored.
func (s *Store) GetRecommendedCourses(ctx context.Context, userID string) []domain.Course {
	out := s.snapshotCourses(ctx, func(c *domain.Course) bool { return c.Rating >= FeaturedMinRating })
	slices.SortStableFunc(out, func(a, b domain.Course) int {
		return cmp.Compare(b.Rating*float64(b.EnrollmentCount), a.Rating*float64(a.EnrollmentCount))
	})
	return truncate(out, RecommendedLimit)
}

func (s *Store) GetCourseStats(ctx context.Context, courseID string) (Stats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.courseIdx[courseID]
	if !ok {
		return Stats{}, false
	}
	return statsFor(&s.courses[i]), true
}

func statsFor(c *domain.Course) Stats {
	hours, _ := parseHours(c.Duration)
	return Stats{
		EnrollmentCount:     c.EnrollmentCount,
		Rating:              c.Rating,
		CompletionRate:      c.CompletionRate,
		EstimatedHours:      hours,
		SatisfactionPercent: c.Rating * 20,
		CertificatesIssued:  int(math.Round(float64(c.EnrollmentCount) * c.CompletionRate / 100)),
		Revenue:             float64(c.EnrollmentCount) * c.Price,
	}
}
