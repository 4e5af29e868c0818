// Package seed provides the static course catalog the service boots from.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"linguacademy/internal/domain"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Static is a catalog.Source backed by a YAML document.
type Static struct {
	data []byte
	path string
}

// Embedded returns the catalog compiled into the binary.
func Embedded() *Static {
	return &Static{data: embeddedCatalog}
}

// File reads the catalog from path on every Load.
func File(path string) *Static {
	return &Static{path: path}
}

func (s *Static) Load(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := s.data
	if s.path != "" {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data = b
	}
	return Parse(data)
}

func Parse(data []byte) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	for i := range snap.Courses {
		if !snap.Courses[i].Level.Valid() {
			return nil, fmt.Errorf("course %q: invalid level %q", snap.Courses[i].ID, snap.Courses[i].Level)
		}
	}
	counts := map[string]int{}
	for _, l := range snap.Lessons {
		counts[l.CourseID]++
	}
	for i := range snap.Courses {
		if snap.Courses[i].LessonsCount == 0 {
			snap.Courses[i].LessonsCount = counts[snap.Courses[i].ID]
		}
	}
	return &snap, nil
}
