package catalog

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"linguacademy/internal/domain"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func course(id string, mut ...func(*domain.Course)) domain.Course {
	c := domain.Course{
		ID:              id,
		Title:           "Course " + id,
		Description:     "Description of " + id,
		Category:        "general",
		Level:           domain.LevelBeginner,
		Price:           10,
		Rating:          4.0,
		EnrollmentCount: 100,
		CompletionRate:  50,
		CreatedAt:       epoch,
		Duration:        "10 hours",
		Language:        "English",
		Instructor:      domain.Instructor{ID: "inst-1", Name: "Sarah Johnson"},
	}
	for _, m := range mut {
		m(&c)
	}
	return c
}

func lessonsFor(courseID string, n int) []domain.Lesson {
	out := make([]domain.Lesson, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.Lesson{
			ID:       fmt.Sprintf("%s-l%d", courseID, i),
			CourseID: courseID,
			Title:    fmt.Sprintf("Lesson %d", i),
			Order:    i,
			Duration: "15 min",
			Type:     domain.LessonVideo,
		})
	}
	return out
}

func staticSource(snap domain.Snapshot) Source {
	return SourceFunc(func(context.Context) (*domain.Snapshot, error) {
		cp := snap
		return &cp, nil
	})
}

type recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recorder) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

func (r *recorder) count(kind NotificationKind) int {
	n := 0
	for _, it := range r.all() {
		if it.Kind == kind {
			n++
		}
	}
	return n
}

func newLoadedStore(t *testing.T, snap domain.Snapshot) (*Store, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := NewStore(staticSource(snap), rec, nil)
	require.NoError(t, s.Load(context.Background()))
	return s, rec
}

func asUser(id string) context.Context {
	return domain.WithUser(context.Background(), domain.User{ID: id})
}

func ids(cs []domain.Course) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}
