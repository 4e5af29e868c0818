package repository

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"linguacademy/internal/domain"
)

type instructorRow struct {
	ID     string `gorm:"primaryKey"`
	Name   string
	Title  string
	Avatar string
	Bio    string
}

func (instructorRow) TableName() string { return "instructors" }

type courseRow struct {
	ID              string `gorm:"primaryKey"`
	Position        int    `gorm:"index"` // catalog order
	Title           string `gorm:"index"`
	Description     string
	Category        string `gorm:"index"`
	Level           string `gorm:"index"`
	Price           float64
	Rating          float64
	EnrollmentCount int
	CompletionRate  float64
	Tags            datatypes.JSON
	InstructorID    string        `gorm:"index"`
	Instructor      instructorRow `gorm:"foreignKey:InstructorID"`
	Duration        string
	Language        string
	Features        datatypes.JSON
	Thumbnail       string
	LessonsCount    int

	// Lessons are only used to cascade deletes.
	Lessons []lessonRow `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (courseRow) TableName() string { return "courses" }

type lessonRow struct {
	ID          string `gorm:"primaryKey"`
	CourseID    string `gorm:"index;uniqueIndex:idx_lesson_course_order"`
	Title       string
	Description string
	Order       int `gorm:"column:lesson_order;uniqueIndex:idx_lesson_course_order"`
	Duration    string
	Type        string
}

func (lessonRow) TableName() string { return "lessons" }

type categoryRow struct {
	ID          string `gorm:"primaryKey"`
	Position    int
	Name        string
	Description string
	Icon        string
	CourseCount int
}

func (categoryRow) TableName() string { return "categories" }

type learningPathRow struct {
	ID                string `gorm:"primaryKey"`
	Position          int
	Title             string
	Description       string
	Level             string
	CourseIDs         datatypes.JSON
	EstimatedDuration string
}

func (learningPathRow) TableName() string { return "learning_paths" }

func stringsJSON(v []string) datatypes.JSON {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

func jsonStrings(j datatypes.JSON) ([]string, error) {
	if len(j) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(j, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func toCourseRow(c domain.Course, pos int) courseRow {
	return courseRow{
		ID:              c.ID,
		Position:        pos,
		Title:           c.Title,
		Description:     c.Description,
		Category:        c.Category,
		Level:           string(c.Level),
		Price:           c.Price,
		Rating:          c.Rating,
		EnrollmentCount: c.EnrollmentCount,
		CompletionRate:  c.CompletionRate,
		Tags:            stringsJSON(c.Tags),
		InstructorID:    c.Instructor.ID,
		Duration:        c.Duration,
		Language:        c.Language,
		Features:        stringsJSON(c.Features),
		Thumbnail:       c.Thumbnail,
		LessonsCount:    c.LessonsCount,
		CreatedAt:       c.CreatedAt,
	}
}

func (r courseRow) toDomain() (domain.Course, error) {
	tags, err := jsonStrings(r.Tags)
	if err != nil {
		return domain.Course{}, err
	}
	features, err := jsonStrings(r.Features)
	if err != nil {
		return domain.Course{}, err
	}
	return domain.Course{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Category:        r.Category,
		Level:           domain.Level(r.Level),
		Price:           r.Price,
		Rating:          r.Rating,
		EnrollmentCount: r.EnrollmentCount,
		CompletionRate:  r.CompletionRate,
		CreatedAt:       r.CreatedAt.UTC(),
		Tags:            tags,
		Instructor: domain.Instructor{
			ID:     r.Instructor.ID,
			Name:   r.Instructor.Name,
			Title:  r.Instructor.Title,
			Avatar: r.Instructor.Avatar,
			Bio:    r.Instructor.Bio,
		},
		Duration:     r.Duration,
		Language:     r.Language,
		Features:     features,
		Thumbnail:    r.Thumbnail,
		LessonsCount: r.LessonsCount,
	}, nil
}

func toLessonRow(l domain.Lesson) lessonRow {
	return lessonRow{
		ID:          l.ID,
		CourseID:    l.CourseID,
		Title:       l.Title,
		Description: l.Description,
		Order:       l.Order,
		Duration:    l.Duration,
		Type:        string(l.Type),
	}
}

func (r lessonRow) toDomain() domain.Lesson {
	return domain.Lesson{
		ID:          r.ID,
		CourseID:    r.CourseID,
		Title:       r.Title,
		Description: r.Description,
		Order:       r.Order,
		Duration:    r.Duration,
		Type:        domain.LessonType(r.Type),
	}
}
