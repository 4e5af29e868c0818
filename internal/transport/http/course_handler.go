package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"linguacademy/internal/catalog"
	"linguacademy/internal/domain"
	"linguacademy/internal/transport/http/response"
)

type CourseHandler struct {
	store *catalog.Store
}

func NewCourseHandler(store *catalog.Store) *CourseHandler {
	return &CourseHandler{store: store}
}

// GET /api/v1/courses
func (h *CourseHandler) Search(c *gin.Context) {
	f, err := parseFilters(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeBadRequest, err)
		return
	}
	response.RespondOK(c, h.store.SearchCourses(c.Request.Context(), f))
}

// GET /api/v1/courses/popular
func (h *CourseHandler) Popular(c *gin.Context) {
	limit, err := limitParam(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeBadRequest, err)
		return
	}
	response.RespondOK(c, h.store.GetPopularCourses(c.Request.Context(), limit))
}

// GET /api/v1/courses/featured
func (h *CourseHandler) Featured(c *gin.Context) {
	limit, err := limitParam(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeBadRequest, err)
		return
	}
	response.RespondOK(c, h.store.GetFeaturedCourses(c.Request.Context(), limit))
}

// GET /api/v1/courses/recommended
func (h *CourseHandler) Recommended(c *gin.Context) {
	ctx := c.Request.Context()
	u, _ := domain.UserFromContext(ctx)
	response.RespondOK(c, h.store.GetRecommendedCourses(ctx, u.ID))
}

// GET /api/v1/courses/category/:category
func (h *CourseHandler) ByCategory(c *gin.Context) {
	response.RespondOK(c, h.store.GetCoursesByCategory(c.Request.Context(), c.Param("category")))
}

// GET /api/v1/courses/level/:level
func (h *CourseHandler) ByLevel(c *gin.Context) {
	level := domain.Level(c.Param("level"))
	if !level.Valid() {
		response.RespondError(c, http.StatusBadRequest, response.CodeBadRequest, fmt.Errorf("unknown level %q", level))
		return
	}
	response.RespondOK(c, h.store.GetCoursesByLevel(c.Request.Context(), level))
}

// GET /api/v1/courses/:id
func (h *CourseHandler) GetOne(c *gin.Context) {
	course, ok := h.store.GetCourse(c.Request.Context(), c.Param("id"))
	if !ok {
		response.RespondError(c, http.StatusNotFound, response.CodeNotFound, domain.ErrCourseNotFound)
		return
	}
	response.RespondOK(c, course)
}

// GET /api/v1/courses/:id/lessons
func (h *CourseHandler) Lessons(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if _, ok := h.store.GetCourse(ctx, id); !ok {
		response.RespondError(c, http.StatusNotFound, response.CodeNotFound, domain.ErrCourseNotFound)
		return
	}
	response.RespondOK(c, h.store.GetLessonsByCourse(ctx, id))
}

// GET /api/v1/courses/:id/stats
func (h *CourseHandler) Stats(c *gin.Context) {
	stats, ok := h.store.GetCourseStats(c.Request.Context(), c.Param("id"))
	if !ok {
		response.RespondError(c, http.StatusNotFound, response.CodeNotFound, domain.ErrCourseNotFound)
		return
	}
	response.RespondOK(c, stats)
}

// POST /api/v1/courses/:id/enroll
func (h *CourseHandler) Enroll(c *gin.Context) {
	course, err := h.store.EnrollInCourse(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		response.RespondError(c, http.StatusUnauthorized, response.CodeUnauthorized, err)
	case errors.Is(err, domain.ErrCourseNotFound):
		response.RespondError(c, http.StatusNotFound, response.CodeNotFound, err)
	case err != nil:
		response.RespondError(c, http.StatusInternalServerError, response.CodeInternal, err)
	default:
		response.RespondOK(c, course)
	}
}

// GET /api/v1/me/courses
func (h *CourseHandler) MyCourses(c *gin.Context) {
	response.RespondOK(c, h.store.EnrolledCourses(c.Request.Context()))
}

// GET /api/v1/categories
func (h *CourseHandler) Categories(c *gin.Context) {
	response.RespondOK(c, h.store.Categories())
}

// GET /api/v1/learning-paths
func (h *CourseHandler) LearningPaths(c *gin.Context) {
	response.RespondOK(c, h.store.LearningPaths())
}
