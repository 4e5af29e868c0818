package domain

type LessonType string

const (
	LessonVideo      LessonType = "video"
	LessonReading    LessonType = "reading"
	LessonQuiz       LessonType = "quiz"
	LessonAssignment LessonType = "assignment"
	LessonLive       LessonType = "live"
)

type Lesson struct {
	ID          string     `json:"id" yaml:"id"`
	CourseID    string     `json:"courseId" yaml:"courseId"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description"`
	Order       int        `json:"order" yaml:"order"` // unique within CourseID
	Duration    string     `json:"duration" yaml:"duration"`
	Type        LessonType `json:"type" yaml:"type"`

	// Per-user view, filled by the catalog store.
	Completed        bool   `json:"completed" yaml:"-"`
	PreviousLessonID string `json:"previousLessonId,omitempty" yaml:"-"`
	NextLessonID     string `json:"nextLessonId,omitempty" yaml:"-"`
}
