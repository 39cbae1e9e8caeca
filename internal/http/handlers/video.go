package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/http/response"
	"github.com/ngocanhdo/engkids-backend/internal/services"
)

type VideoHandler struct {
	contentService services.ContentService
}

func NewVideoHandler(contentService services.ContentService) *VideoHandler {
	return &VideoHandler{contentService: contentService}
}

func (vh *VideoHandler) Create(c *gin.Context) {
	var video types.Video
	if err := c.ShouldBindJSON(&video); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, err := vh.contentService.CreateVideo(c.Request.Context(), &video)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, created)
}

func (vh *VideoHandler) List(c *gin.Context) {
	videos, err := vh.contentService.ListVideos(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"videos": videos})
}

func (vh *VideoHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := vh.contentService.UpdateVideo(c.Request.Context(), id, fields); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (vh *VideoHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := vh.contentService.DeleteVideo(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
