// Package catalog holds the in-memory course catalog: the only owner of course and
// lesson records and of the per-user enrollment and lesson completion state derived
// from them.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"linguacademy/internal/domain"
	"linguacademy/internal/platform/logger"
)

// Source supplies the seed snapshot the store is initialized from.
type Source interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
}

type Store struct {
	source   Source
	notifier Notifier
	log      *logger.Logger

	loadMu   sync.Mutex // serializes Load
	mu       sync.RWMutex
	inflight int // Load calls started and not finished
	err      error

	courses         []domain.Course
	courseIdx       map[string]int
	lessons         []domain.Lesson
	lessonIdx       map[string]int
	lessonsByCourse map[string][]int // indexes into lessons, ascending Order
	categories      []domain.Category
	paths           []domain.LearningPath

	sessions map[string]*session
}

// session is the mutable state of one user. The empty user id is the guest session.
type session struct {
	enrolled  map[string]int // course id -> stored progress
	completed map[string]struct{}
}

func newSession() *session {
	return &session{enrolled: map[string]int{}, completed: map[string]struct{}{}}
}

func NewStore(source Source, notifier Notifier, log *logger.Logger) *Store {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		source:   source,
		notifier: notifier,
		log:      log.With("component", "catalog.Store"),
		sessions: map[string]*session{},
	}
}

// Load reads the seed snapshot and installs it. A failure is kept in Err and
// returned; there is no retry.
//
// Overlapping calls run one after another and Loading stays true until the last
// of them finishes.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()

	snap, err := s.loadSnapshot(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if err != nil {
		s.err = fmt.Errorf("%w: %v", domain.ErrLoadFailure, err)
		s.log.Error("catalog load failed", "error", err)
		return s.err
	}
	if err := s.install(snap); err != nil {
		s.err = fmt.Errorf("%w: %v", domain.ErrLoadFailure, err)
		s.log.Error("catalog seed rejected", "error", err)
		return s.err
	}
	s.log.Info("catalog loaded", "courses", len(s.courses), "lessons", len(s.lessons))
	return nil
}

func (s *Store) loadSnapshot(ctx context.Context) (snap *domain.Snapshot, err error) {
	if s.source == nil {
		return nil, fmt.Errorf("no seed source configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("seed source panicked: %v", r)
		}
	}()
	snap, err = s.source.Load(ctx)
	if err == nil && snap == nil {
		err = fmt.Errorf("seed source returned no snapshot")
	}
	return snap, err
}

// Loading reports whether initialization is in progress.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Err holds the load failure, if the last Load failed.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// install validates snap and replaces the catalog. Callers hold mu.
func (s *Store) install(snap *domain.Snapshot) error {
	courseIdx := make(map[string]int, len(snap.Courses))
	courses := make([]domain.Course, 0, len(snap.Courses))
	for _, c := range snap.Courses {
		if c.ID == "" {
			return fmt.Errorf("course with empty id")
		}
		if _, dup := courseIdx[c.ID]; dup {
			return fmt.Errorf("duplicate course id %q", c.ID)
		}
		c = c.Clone()
		c.Enrollment = domain.NotEnrolled()
		courseIdx[c.ID] = len(courses)
		courses = append(courses, c)
	}

	lessonIdx := make(map[string]int, len(snap.Lessons))
	lessons := make([]domain.Lesson, 0, len(snap.Lessons))
	byCourse := map[string][]int{}
	orders := map[string]map[int]string{}
	for _, l := range snap.Lessons {
		if l.ID == "" {
			return fmt.Errorf("lesson with empty id")
		}
		if _, dup := lessonIdx[l.ID]; dup {
			return fmt.Errorf("duplicate lesson id %q", l.ID)
		}
		if _, ok := courseIdx[l.CourseID]; !ok {
			return fmt.Errorf("lesson %q references unknown course %q", l.ID, l.CourseID)
		}
		if orders[l.CourseID] == nil {
			orders[l.CourseID] = map[int]string{}
		}
		if other, dup := orders[l.CourseID][l.Order]; dup {
			return fmt.Errorf("lessons %q and %q share order %d in course %q", other, l.ID, l.Order, l.CourseID)
		}
		orders[l.CourseID][l.Order] = l.ID

		l.Completed, l.PreviousLessonID, l.NextLessonID = false, "", ""
		lessonIdx[l.ID] = len(lessons)
		byCourse[l.CourseID] = append(byCourse[l.CourseID], len(lessons))
		lessons = append(lessons, l)
	}
	for _, idxs := range byCourse {
		sort.Slice(idxs, func(i, j int) bool { return lessons[idxs[i]].Order < lessons[idxs[j]].Order })
	}

	s.courses = courses
	s.courseIdx = courseIdx
	s.lessons = lessons
	s.lessonIdx = lessonIdx
	s.lessonsByCourse = byCourse
	s.categories = append([]domain.Category(nil), snap.Categories...)
	s.paths = make([]domain.LearningPath, 0, len(snap.LearningPaths))
	for _, p := range snap.LearningPaths {
		p.CourseIDs = append([]string(nil), p.CourseIDs...)
		s.paths = append(s.paths, p)
	}
	s.sessions = map[string]*session{}
	return nil
}

func userID(ctx context.Context) string {
	if u, ok := domain.UserFromContext(ctx); ok {
		return u.ID
	}
	return ""
}

// readSession returns the caller's session or nil. Callers hold mu.
func (s *Store) readSession(ctx context.Context) *session {
	return s.sessions[userID(ctx)]
}

// writeSession returns the session for uid, creating it. Callers hold mu for writing.
func (s *Store) writeSession(uid string) *session {
	sess, ok := s.sessions[uid]
	if !ok {
		sess = newSession()
		s.sessions[uid] = sess
	}
	return sess
}

// courseView is the caller-owned copy of courses[i] as seen by sess.
func (s *Store) courseView(sess *session, i int) domain.Course {
	c := s.courses[i].Clone()
	c.Enrollment = domain.NotEnrolled()
	if sess != nil {
		if p, ok := sess.enrolled[c.ID]; ok {
			c.Enrollment = domain.Enrolled(p)
		}
	}
	return c
}

// lessonView is the copy of lessons[i] with completion and navigation filled in.
func (s *Store) lessonView(sess *session, i int) domain.Lesson {
	l := s.lessons[i]
	if sess != nil {
		_, l.Completed = sess.completed[l.ID]
	}
	seq := s.lessonsByCourse[l.CourseID]
	for pos, idx := range seq {
		if idx != i {
			continue
		}
		if pos > 0 {
			l.PreviousLessonID = s.lessons[seq[pos-1]].ID
		}
		if pos < len(seq)-1 {
			l.NextLessonID = s.lessons[seq[pos+1]].ID
		}
		break
	}
	return l
}

func (s *Store) courseLessons(sess *session, courseID string) []domain.Lesson {
	seq := s.lessonsByCourse[courseID]
	out := make([]domain.Lesson, 0, len(seq))
	for _, idx := range seq {
		out = append(out, s.lessonView(sess, idx))
	}
	return out
}

func (s *Store) GetCourse(ctx context.Context, id string) (domain.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.courseIdx[id]
	if !ok {
		return domain.Course{}, false
	}
	return s.courseView(s.readSession(ctx), i), true
}

// GetLessonsByCourse returns the course's lessons in ascending order; empty when
// the course has none or does not exist.
func (s *Store) GetLessonsByCourse(ctx context.Context, courseID string) []domain.Lesson {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.courseLessons(s.readSession(ctx), courseID)
}

func (s *Store) GetLesson(ctx context.Context, id string) (domain.Lesson, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.lessonIdx[id]
	if !ok {
		return domain.Lesson{}, false
	}
	return s.lessonView(s.readSession(ctx), i), true
}

func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category(nil), s.categories...)
}

func (s *Store) LearningPaths() []domain.LearningPath {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LearningPath, 0, len(s.paths))
	for _, p := range s.paths {
		p.CourseIDs = append([]string(nil), p.CourseIDs...)
		out = append(out, p)
	}
	return out
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*domain.Snapshot, error)

func (f SourceFunc) Load(ctx context.Context) (*domain.Snapshot, error) { return f(ctx) }
