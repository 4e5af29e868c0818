package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"linguacademy/internal/catalog"
	"linguacademy/internal/infrastructure/notify"
	"linguacademy/internal/middleware"
	"linguacademy/internal/platform/logger"
)

type RouterDeps struct {
	Store          *catalog.Store
	Inbox          *notify.Inbox
	Tokens         middleware.TokenValidator
	Limiter        *middleware.RateLimiter
	RatePerMinute  int
	AllowedOrigins []string
	Log            *logger.Logger
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(d.Log))
	r.Use(middleware.CORS(d.AllowedOrigins))

	status := NewStatusHandler(d.Store)
	courseHandler := NewCourseHandler(d.Store)
	lessonHandler := NewLessonHandler(d.Store)
	notificationHandler := NewNotificationHandler(d.Inbox)

	r.GET("/health", status.Health)

	api := r.Group("/api/v1")
	api.Use(middleware.Authenticate(d.Tokens))
	{
		api.GET("/status", status.Status)
		api.GET("/notifications", notificationHandler.Drain)

		ready := api.Group("")
		ready.Use(RequireCatalog(d.Store))
		{
			ready.GET("/categories", courseHandler.Categories)
			ready.GET("/learning-paths", courseHandler.LearningPaths)

			course := ready.Group("/courses")
			{
				course.GET("", courseHandler.Search)
				course.GET("/popular", courseHandler.Popular)
				course.GET("/featured", courseHandler.Featured)
				course.GET("/recommended", courseHandler.Recommended)
				course.GET("/category/:category", courseHandler.ByCategory)
				course.GET("/level/:level", courseHandler.ByLevel)
				course.GET("/:id", courseHandler.GetOne)
				course.GET("/:id/lessons", courseHandler.Lessons)
				course.GET("/:id/stats", courseHandler.Stats)
				course.POST("/:id/enroll",
					middleware.RequireUser(),
					d.Limiter.Limit("enroll", d.RatePerMinute, time.Minute),
					courseHandler.Enroll)
			}

			lesson := ready.Group("/lessons")
			{
				lesson.GET("/:id", lessonHandler.GetOne)
				lesson.POST("/:id/complete",
					d.Limiter.Limit("complete", d.RatePerMinute, time.Minute),
					lessonHandler.Complete)
			}

			me := ready.Group("/me")
			me.Use(middleware.RequireUser())
			{
				me.GET("/courses", courseHandler.MyCourses)
			}
		}
	}

	return r
}
