package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"linguacademy/internal/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func testSnapshot() *domain.Snapshot {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	inst := domain.Instructor{ID: "inst-1", Name: "Sarah Johnson", Title: "Grammar lead"}
	return &domain.Snapshot{
		Courses: []domain.Course{
			{
				ID: "b-course", Title: "Business English", Category: "business", Level: domain.LevelIntermediate,
				Price: 79.99, Rating: 4.8, EnrollmentCount: 900, CompletionRate: 61, CreatedAt: created,
				Tags: []string{"business", "email"}, Instructor: inst, Duration: "30 hours",
				Language: "English", Features: []string{"Certificate"}, LessonsCount: 2,
			},
			{
				ID: "a-course", Title: "Grammar Basics", Category: "grammar", Level: domain.LevelBeginner,
				Price: 0, Rating: 4.5, EnrollmentCount: 1200, CompletionRate: 70, CreatedAt: created.AddDate(0, 1, 0),
				Instructor: inst, Duration: "12 hours", Language: "English", LessonsCount: 1,
			},
		},
		Lessons: []domain.Lesson{
			{ID: "b-2", CourseID: "b-course", Title: "Meetings", Order: 2, Duration: "20 min", Type: domain.LessonVideo},
			{ID: "b-1", CourseID: "b-course", Title: "Emails", Order: 1, Duration: "15 min", Type: domain.LessonReading},
			{ID: "a-1", CourseID: "a-course", Title: "Nouns", Order: 1, Duration: "10 min", Type: domain.LessonQuiz},
		},
		Categories: []domain.Category{
			{ID: "grammar", Name: "Grammar", CourseCount: 1},
			{ID: "business", Name: "Business", CourseCount: 1},
		},
		LearningPaths: []domain.LearningPath{
			{ID: "path-1", Title: "Career", Level: domain.LevelIntermediate, CourseIDs: []string{"a-course", "b-course"}, EstimatedDuration: "3 months"},
		},
	}
}

func TestCatalogRepository_SeedAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(openTestDB(t))
	require.NoError(t, repo.Migrate(ctx))

	seeded, err := repo.SeedIfEmpty(ctx, testSnapshot())
	require.NoError(t, err)
	assert.True(t, seeded)

	snap, err := repo.Load(ctx)
	require.NoError(t, err)

	require.Len(t, snap.Courses, 2)
	// insertion order is preserved through the position column
	assert.Equal(t, "b-course", snap.Courses[0].ID)
	assert.Equal(t, "a-course", snap.Courses[1].ID)

	b := snap.Courses[0]
	assert.Equal(t, []string{"business", "email"}, b.Tags)
	assert.Equal(t, []string{"Certificate"}, b.Features)
	assert.Equal(t, "Sarah Johnson", b.Instructor.Name)
	assert.Equal(t, domain.LevelIntermediate, b.Level)
	assert.True(t, b.CreatedAt.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Empty(t, snap.Courses[1].Tags)

	require.Len(t, snap.Lessons, 3)
	var bLessons []string
	for _, l := range snap.Lessons {
		if l.CourseID == "b-course" {
			bLessons = append(bLessons, l.ID)
		}
	}
	assert.Equal(t, []string{"b-1", "b-2"}, bLessons)

	require.Len(t, snap.Categories, 2)
	assert.Equal(t, "grammar", snap.Categories[0].ID)
	require.Len(t, snap.LearningPaths, 1)
	assert.Equal(t, []string{"a-course", "b-course"}, snap.LearningPaths[0].CourseIDs)
}

func TestCatalogRepository_SeedIfEmptySkipsPopulatedDB(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(openTestDB(t))
	require.NoError(t, repo.Migrate(ctx))

	_, err := repo.SeedIfEmpty(ctx, testSnapshot())
	require.NoError(t, err)

	seeded, err := repo.SeedIfEmpty(ctx, testSnapshot())
	require.NoError(t, err)
	assert.False(t, seeded)

	n, err := repo.CountCourses(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestCatalogRepository_LoadEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(openTestDB(t))
	require.NoError(t, repo.Migrate(ctx))

	snap, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Courses)
	assert.Empty(t, snap.Lessons)
}

func TestCatalogRepository_LoadWithoutTablesFails(t *testing.T) {
	repo := NewCatalogRepository(openTestDB(t))
	_, err := repo.Load(context.Background())
	assert.Error(t, err)
}
