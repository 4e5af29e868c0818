package catalog

import (
	"context"
	"math"
	"time"

	"linguacademy/internal/domain"
)

// computeProgress is round(100 * completed / total) over one course's lessons.
func computeProgress(lessons []domain.Lesson) int {
	if len(lessons) == 0 {
		return 0
	}
	done := 0
	for _, l := range lessons {
		if l.Completed {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(lessons))))
}

// EnrollInCourse enrolls the user carried by ctx. Enrolling twice keeps the
// existing progress and sends no second notification.
func (s *Store) EnrollInCourse(ctx context.Context, courseID string) (domain.Course, error) {
	user, ok := domain.UserFromContext(ctx)
	if !ok {
		return domain.Course{}, domain.ErrNotAuthenticated
	}

	s.mu.Lock()
	i, ok := s.courseIdx[courseID]
	if !ok {
		s.mu.Unlock()
		return domain.Course{}, domain.ErrCourseNotFound
	}
	sess := s.writeSession(user.ID)
	_, already := sess.enrolled[courseID]
	if !already {
		sess.enrolled[courseID] = 0
	}
	course := s.courseView(sess, i)
	s.mu.Unlock()

	if already {
		return course, nil
	}
	s.log.Info("enrolled in course", "user_id", user.ID, "course_id", courseID)
	s.notifier.Notify(ctx, Notification{
		UserID:   user.ID,
		Kind:     KindEnrolled,
		Message:  enrolledMessage(course.Title),
		CourseID: courseID,
		At:       time.Now(),
	})
	return course, nil
}

// Completion describes the outcome of MarkLessonComplete.
type Completion struct {
	Lesson          domain.Lesson `json:"lesson"`
	CourseID        string        `json:"courseId"`
	Progress        int           `json:"progress"`
	CourseCompleted bool          `json:"courseCompleted"`
}

// MarkLessonComplete marks the lesson completed for the caller's session and
// recomputes the course progress. An unknown lesson id is a silent no-op and
// reports false.
func (s *Store) MarkLessonComplete(ctx context.Context, lessonID string) (Completion, bool) {
	uid := userID(ctx)

	s.mu.Lock()
	i, ok := s.lessonIdx[lessonID]
	if !ok {
		s.mu.Unlock()
		return Completion{}, false
	}
	courseID := s.lessons[i].CourseID
	sess := s.writeSession(uid)

	before := computeProgress(s.courseLessons(sess, courseID))
	sess.completed[lessonID] = struct{}{}
	after := computeProgress(s.courseLessons(sess, courseID))

	// Enrolled courses announce completion when the stored progress reaches 100,
	// which can lag the lesson set when lessons were done before enrolling.
	completed := after == 100 && before < 100
	if stored, enrolled := sess.enrolled[courseID]; enrolled {
		completed = after == 100 && stored < 100
		if after > stored {
			sess.enrolled[courseID] = after
		}
	}
	out := Completion{
		Lesson:          s.lessonView(sess, i),
		CourseID:        courseID,
		Progress:        after,
		CourseCompleted: completed,
	}
	s.mu.Unlock()

	n := Notification{
		UserID:   uid,
		Kind:     KindLessonCompleted,
		Message:  MsgLessonCompleted,
		CourseID: courseID,
		LessonID: lessonID,
		At:       time.Now(),
	}
	if out.CourseCompleted {
		n.Kind, n.Message = KindCourseCompleted, MsgCourseCompleted
		s.log.Info("course completed", "user_id", uid, "course_id", courseID)
	}
	s.notifier.Notify(ctx, n)
	return out, true
}

// EnrolledCourses lists the caller's enrolled courses in catalog order.
func (s *Store) EnrolledCourses(ctx context.Context) []domain.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := s.readSession(ctx)
	if sess == nil {
		return []domain.Course{}
	}
	out := []domain.Course{}
	for i := range s.courses {
		if _, ok := sess.enrolled[s.courses[i].ID]; ok {
			out = append(out, s.courseView(sess, i))
		}
	}
	return out
}
