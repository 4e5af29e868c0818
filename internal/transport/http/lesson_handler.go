package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"linguacademy/internal/catalog"
	"linguacademy/internal/transport/http/response"
)

var errLessonNotFound = errors.New("lesson not found")

type LessonHandler struct {
	store *catalog.Store
}

func NewLessonHandler(store *catalog.Store) *LessonHandler {
	return &LessonHandler{store: store}
}

// GET /api/v1/lessons/:id
func (h *LessonHandler) GetOne(c *gin.Context) {
	lesson, ok := h.store.GetLesson(c.Request.Context(), c.Param("id"))
	if !ok {
		response.RespondError(c, http.StatusNotFound, response.CodeNotFound, errLessonNotFound)
		return
	}
	response.RespondOK(c, lesson)
}

// POST /api/v1/lessons/:id/complete
//
// The store ignores unknown lessons; over HTTP that still surfaces as 404.
func (h *LessonHandler) Complete(c *gin.Context) {
	done, ok := h.store.MarkLessonComplete(c.Request.Context(), c.Param("id"))
	if !ok {
		response.RespondError(c, http.StatusNotFound, response.CodeNotFound, errLessonNotFound)
		return
	}
	response.RespondOK(c, done)
}
