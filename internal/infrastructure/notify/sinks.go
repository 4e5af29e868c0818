// Package notify delivers catalog notifications to the log, to redis pub/sub and
// to a per-user in-memory inbox the HTTP layer drains.
package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"linguacademy/internal/catalog"
	"linguacademy/internal/platform/logger"
)

const guestChannel = "guest"

type LogSink struct {
	log *logger.Logger
}

func NewLogSink(log *logger.Logger) *LogSink {
	if log == nil {
		log = logger.Nop()
	}
	return &LogSink{log: log.With("component", "notify")}
}

func (s *LogSink) Notify(_ context.Context, n catalog.Notification) {
	s.log.Info(n.Message,
		"user_id", n.UserID,
		"kind", string(n.Kind),
		"course_id", n.CourseID,
		"lesson_id", n.LessonID,
	)
}

// RedisSink publishes each notification as JSON on notifications:<userId>.
type RedisSink struct {
	rdb redis.Cmdable
	log *logger.Logger
}

func NewRedisSink(rdb redis.Cmdable, log *logger.Logger) *RedisSink {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisSink{rdb: rdb, log: log}
}

func Channel(userID string) string {
	if userID == "" {
		userID = guestChannel
	}
	return "notifications:" + userID
}

func (s *RedisSink) Notify(ctx context.Context, n catalog.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		s.log.Error("encode notification", "error", err)
		return
	}
	if err := s.rdb.Publish(ctx, Channel(n.UserID), data).Err(); err != nil {
		s.log.Warn("publish notification", "channel", Channel(n.UserID), "error", err)
	}
}

// Fanout forwards every notification to each sink in order.
type Fanout []catalog.Notifier

func (f Fanout) Notify(ctx context.Context, n catalog.Notification) {
	for _, s := range f {
		if s != nil {
			s.Notify(ctx, n)
		}
	}
}
