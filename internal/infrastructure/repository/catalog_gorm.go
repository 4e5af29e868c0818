package repository

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"linguacademy/internal/domain"
)

// CatalogRepository reads the seed catalog from a SQL database. The store never
// writes enrollment or progress back; the tables only hold static content.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(
		&instructorRow{}, &courseRow{}, &lessonRow{}, &categoryRow{}, &learningPathRow{},
	)
}

func (r *CatalogRepository) CountCourses(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&courseRow{}).Count(&n).Error
	return n, err
}

// Load reads all catalog tables concurrently.
func (r *CatalogRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	var (
		courses []courseRow
		lessons []lessonRow
		cats    []categoryRow
		paths   []learningPathRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).Preload("Instructor").Order("position asc").Find(&courses).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Order("course_id asc").Order("lesson_order asc").Find(&lessons).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Order("position asc").Find(&cats).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Order("position asc").Find(&paths).Error
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load catalog tables: %w", err)
	}

	snap := &domain.Snapshot{
		Courses:       make([]domain.Course, 0, len(courses)),
		Lessons:       make([]domain.Lesson, 0, len(lessons)),
		Categories:    make([]domain.Category, 0, len(cats)),
		LearningPaths: make([]domain.LearningPath, 0, len(paths)),
	}
	for _, row := range courses {
		c, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("course %s: %w", row.ID, err)
		}
		snap.Courses = append(snap.Courses, c)
	}
	for _, row := range lessons {
		snap.Lessons = append(snap.Lessons, row.toDomain())
	}
	for _, row := range cats {
		snap.Categories = append(snap.Categories, domain.Category{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Icon:        row.Icon,
			CourseCount: row.CourseCount,
		})
	}
	for _, row := range paths {
		ids, err := jsonStrings(row.CourseIDs)
		if err != nil {
			return nil, fmt.Errorf("learning path %s: %w", row.ID, err)
		}
		snap.LearningPaths = append(snap.LearningPaths, domain.LearningPath{
			ID:                row.ID,
			Title:             row.Title,
			Description:       row.Description,
			Level:             domain.Level(row.Level),
			CourseIDs:         ids,
			EstimatedDuration: row.EstimatedDuration,
		})
	}
	return snap, nil
}

// Seed writes snap in one transaction. Existing rows with the same ids are kept.
func (r *CatalogRepository) Seed(ctx context.Context, snap *domain.Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seen := map[string]bool{}
		var instructors []instructorRow
		for _, c := range snap.Courses {
			if c.Instructor.ID == "" || seen[c.Instructor.ID] {
				continue
			}
			seen[c.Instructor.ID] = true
			instructors = append(instructors, instructorRow{
				ID:     c.Instructor.ID,
				Name:   c.Instructor.Name,
				Title:  c.Instructor.Title,
				Avatar: c.Instructor.Avatar,
				Bio:    c.Instructor.Bio,
			})
		}
		if err := createAll(tx, instructors); err != nil {
			return err
		}

		courses := make([]courseRow, 0, len(snap.Courses))
		for i, c := range snap.Courses {
			courses = append(courses, toCourseRow(c, i))
		}
		if err := createAll(tx.Omit("Instructor", "Lessons"), courses); err != nil {
			return err
		}

		lessons := make([]lessonRow, 0, len(snap.Lessons))
		for _, l := range snap.Lessons {
			lessons = append(lessons, toLessonRow(l))
		}
		if err := createAll(tx, lessons); err != nil {
			return err
		}

		cats := make([]categoryRow, 0, len(snap.Categories))
		for i, c := range snap.Categories {
			cats = append(cats, categoryRow{
				ID: c.ID, Position: i, Name: c.Name, Description: c.Description, Icon: c.Icon, CourseCount: c.CourseCount,
			})
		}
		if err := createAll(tx, cats); err != nil {
			return err
		}

		paths := make([]learningPathRow, 0, len(snap.LearningPaths))
		for i, p := range snap.LearningPaths {
			paths = append(paths, learningPathRow{
				ID: p.ID, Position: i, Title: p.Title, Description: p.Description,
				Level: string(p.Level), CourseIDs: stringsJSON(p.CourseIDs), EstimatedDuration: p.EstimatedDuration,
			})
		}
		return createAll(tx, paths)
	})
}

// SeedIfEmpty seeds only when the courses table is empty and reports whether it did.
func (r *CatalogRepository) SeedIfEmpty(ctx context.Context, snap *domain.Snapshot) (bool, error) {
	n, err := r.CountCourses(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := r.Seed(ctx, snap); err != nil {
		return false, err
	}
	return true, nil
}

func createAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, 100).Error
}
