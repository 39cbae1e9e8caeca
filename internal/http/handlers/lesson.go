package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/http/response"
	"github.com/ngocanhdo/engkids-backend/internal/services"
)

type LessonHandler struct {
	lessonService services.LessonService
}

func NewLessonHandler(lessonService services.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

func (lh *LessonHandler) Create(c *gin.Context) {
	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		VideoURL    string  `json:"video_url"`
		DurationSec float64 `json:"duration_sec"`
		Difficulty  string  `json:"difficulty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	lesson := types.Lesson{
		Title:           req.Title,
		Description:     req.Description,
		VideoURL:        req.VideoURL,
		DurationSec:     req.DurationSec,
		DifficultyLevel: services.DifficultyValue(req.Difficulty),
	}
	created, err := lh.lessonService.Create(c.Request.Context(), &lesson)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, created)
}

func (lh *LessonHandler) List(c *gin.Context) {
	lessons, err := lh.lessonService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"lessons": lessons})
}

func (lh *LessonHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	lesson, err := lh.lessonService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, lesson)
}

func (lh *LessonHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := lh.lessonService.Update(c.Request.Context(), id, fields); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (lh *LessonHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := lh.lessonService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
