package catalog

import (
	"context"
	"fmt"
	"time"
)

type NotificationKind string

const (
	KindEnrolled        NotificationKind = "enrolled"
	KindLessonCompleted NotificationKind = "lesson_completed"
	KindCourseCompleted NotificationKind = "course_completed"
)

const (
	MsgLessonCompleted = "Lesson completed!"
	MsgCourseCompleted = "🎉 Congratulations! You completed the course!"
)

func enrolledMessage(title string) string {
	return fmt.Sprintf("Successfully enrolled in %s", title)
}

// Notification is a user-facing toast. UserID is empty for the guest session.
type Notification struct {
	UserID   string           `json:"userId,omitempty"`
	Kind     NotificationKind `json:"kind"`
	Message  string           `json:"message"`
	CourseID string           `json:"courseId,omitempty"`
	LessonID string           `json:"lessonId,omitempty"`
	At       time.Time        `json:"at"`
}

// Notifier is fire-and-forget: implementations must not block the caller for long
// and have no way to fail the operation that triggered them.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Notification) {}

type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }
