package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/http/response"
	"github.com/ngocanhdo/engkids-backend/internal/services"
)

// ContentHandler covers the vocabulary catalogue: categories and the vocab
// items inside them.
type ContentHandler struct {
	contentService services.ContentService
}

func NewContentHandler(contentService services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (ch *ContentHandler) CreateCategory(c *gin.Context) {
	var category types.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, err := ch.contentService.CreateCategory(c.Request.Context(), &category)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, created)
}

func (ch *ContentHandler) ListCategories(c *gin.Context) {
	categories, err := ch.contentService.ListCategories(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"categories": categories})
}

func (ch *ContentHandler) UpdateCategory(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := ch.contentService.UpdateCategory(c.Request.Context(), id, fields); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ch *ContentHandler) DeleteCategory(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := ch.contentService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ch *ContentHandler) CreateVocab(c *gin.Context) {
	var vocab types.VocabItem
	if err := c.ShouldBindJSON(&vocab); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, err := ch.contentService.CreateVocab(c.Request.Context(), &vocab)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, created)
}

func (ch *ContentHandler) ListVocab(c *gin.Context) {
	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		categoryID = &id
	}
	vocab, err := ch.contentService.ListVocab(c.Request.Context(), categoryID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"vocabulary": vocab})
}

func (ch *ContentHandler) UpdateVocab(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := ch.contentService.UpdateVocab(c.Request.Context(), id, fields); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (ch *ContentHandler) DeleteVocab(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := ch.contentService.DeleteVocab(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
