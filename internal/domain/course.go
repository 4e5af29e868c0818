package domain

import (
	"encoding/json"
	"time"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Instructor is a read-only foreign entity referenced by courses.
type Instructor struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Title  string `json:"title,omitempty" yaml:"title"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar"`
	Bio    string `json:"bio,omitempty" yaml:"bio"`
}

type Course struct {
	ID              string     `json:"id" yaml:"id"`
	Title           string     `json:"title" yaml:"title"`
	Description     string     `json:"description" yaml:"description"`
	Category        string     `json:"category" yaml:"category"`
	Level           Level      `json:"level" yaml:"level"`
	Price           float64    `json:"price" yaml:"price"`
	Rating          float64    `json:"rating" yaml:"rating"`
	EnrollmentCount int        `json:"enrollmentCount" yaml:"enrollmentCount"`
	CompletionRate  float64    `json:"completionRate" yaml:"completionRate"`
	CreatedAt       time.Time  `json:"createdAt" yaml:"createdAt"`
	Tags            []string   `json:"tags" yaml:"tags"`
	Instructor      Instructor `json:"instructor" yaml:"instructor"`
	Duration        string     `json:"duration" yaml:"duration"`
	Language        string     `json:"language" yaml:"language"`
	Features        []string   `json:"features" yaml:"features"`
	Thumbnail       string     `json:"thumbnail,omitempty" yaml:"thumbnail"`
	LessonsCount    int        `json:"lessonsCount" yaml:"lessonsCount"`

	// Per-user view, filled by the catalog store.
	Enrollment Enrollment `json:"enrollment" yaml:"-"`
}

// Clone returns a deep copy so store-owned slices never leak to callers.
func (c Course) Clone() Course {
	out := c
	out.Tags = append([]string(nil), c.Tags...)
	out.Features = append([]string(nil), c.Features...)
	return out
}

// Enrollment is either NotEnrolled or Enrolled with a progress percentage.
// Progress is only reachable through Progress, which reports whether it exists.
type Enrollment struct {
	enrolled bool
	progress int
}

func NotEnrolled() Enrollment { return Enrollment{} }

func Enrolled(progress int) Enrollment {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return Enrollment{enrolled: true, progress: progress}
}

func (e Enrollment) IsEnrolled() bool { return e.enrolled }

func (e Enrollment) Progress() (int, bool) {
	if !e.enrolled {
		return 0, false
	}
	return e.progress, true
}

type enrollmentJSON struct {
	Enrolled bool `json:"enrolled"`
	Progress *int `json:"progress,omitempty"`
}

func (e Enrollment) MarshalJSON() ([]byte, error) {
	out := enrollmentJSON{Enrolled: e.enrolled}
	if e.enrolled {
		p := e.progress
		out.Progress = &p
	}
	return json.Marshal(out)
}

func (e *Enrollment) UnmarshalJSON(data []byte) error {
	var in enrollmentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if !in.Enrolled {
		*e = NotEnrolled()
		return nil
	}
	p := 0
	if in.Progress != nil {
		p = *in.Progress
	}
	*e = Enrolled(p)
	return nil
}
