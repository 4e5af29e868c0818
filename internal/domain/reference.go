package domain

type Category struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon,omitempty" yaml:"icon"`
	CourseCount int    `json:"courseCount" yaml:"courseCount"`
}

type LearningPath struct {
	ID                string   `json:"id" yaml:"id"`
	Title             string   `json:"title" yaml:"title"`
	Description       string   `json:"description" yaml:"description"`
	Level             Level    `json:"level" yaml:"level"`
	CourseIDs         []string `json:"courseIds" yaml:"courseIds"`
	EstimatedDuration string   `json:"estimatedDuration" yaml:"estimatedDuration"`
}

// Snapshot is the full seed set the catalog is initialized from.
type Snapshot struct {
	Courses       []Course       `json:"courses" yaml:"courses"`
	Lessons       []Lesson       `json:"lessons" yaml:"lessons"`
	Categories    []Category     `json:"categories" yaml:"categories"`
	LearningPaths []LearningPath `json:"learningPaths" yaml:"learningPaths"`
}
