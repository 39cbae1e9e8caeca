package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/http/response"
	"github.com/ngocanhdo/engkids-backend/internal/platform/apierr"
	"github.com/ngocanhdo/engkids-backend/internal/services"
)

// EditorHandler exposes the checkpoint editor's session state machine over
// HTTP. Every route except Open addresses an existing session by id.
type EditorHandler struct {
	editorService services.EditorService
}

func NewEditorHandler(editorService services.EditorService) *EditorHandler {
	return &EditorHandler{editorService: editorService}
}

func (eh *EditorHandler) Open(c *gin.Context) {
	lessonID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	state, boot, err := eh.editorService.Open(c.Request.Context(), lessonID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"state":      state,
		"vocabulary": boot.Vocabulary,
		"categories": boot.Categories,
	})
}

func (eh *EditorHandler) Close(c *gin.Context) {
	sid, ok := uuidParam(c, "sid")
	if !ok {
		return
	}
	eh.editorService.Close(sid)
	response.RespondOK(c, gin.H{"ok": true})
}

func (eh *EditorHandler) State(c *gin.Context) {
	sid, ok := uuidParam(c, "sid")
	if !ok {
		return
	}
	state, err := eh.editorService.State(sid)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, state)
}

func (eh *EditorHandler) Progress(c *gin.Context) {
	sid, ok := uuidParam(c, "sid")
	if !ok {
		return
	}
	var req struct {
		TimeSec float64 `json:"time_sec"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := eh.editorService.Progress(sid, req.TimeSec)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, res)
}

func (eh *EditorHandler) Seek(c *gin.Context) {
	sid, ok := uuidParam(c, "sid")
	if !ok {
		return
	}
	var req struct {
		TimeSec float64 `json:"time_sec"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	state, err := eh.editorService.Seek(sid, req.TimeSec)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, state)
}

func (eh *EditorHandler) Resume(c *gin.Context) {
	sid, ok := uuidParam(c, "sid")
	if !ok {
		return
	}
	if err := eh.editorService.Resume(sid); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (eh *EditorHandler) AddCheckpoint(c *gin.Context) {
	sid, ok := uuidParam(c, "sid")
	if !ok {
		return
	}
	var req struct {
		AtSec *float64 `json:"at_sec"`
		Kind  string   `json:"kind"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	state, err := eh.editorService.AddCheckpoint(sid, req.AtSec, req.Kind)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, state)
}

func (eh *EditorHandler) EditCheckpoint(c *gin.Context) {
	sid, ok := uuidParam(c, "sid")
	if !ok {
		return
	}
	state, err := eh.editorService.EditCheckpoint(sid, c.Param("token"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, state)
}

func (eh *EditorHandler) SaveCheckpoint(c *gin.Context) {
	sid, ok := uuidParam(c, "sid")
	if !ok {
		return
	}
	var item types.CheckpointItem
	if err := c.ShouldBindJSON(&item); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	state, err := eh.editorService.SaveCheckpoint(sid, item)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, state)
}

func (eh *EditorHandler) CancelEdit(c *gin.Context) {
	sid, ok := uuidParam(c, "sid")
	if !ok {
		return
	}
	if err := eh.editorService.CancelEdit(sid); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (eh *EditorHandler) RequestDelete(c *gin.Context) {
	sid, ok := uuidParam(c, "sid")
	if !ok {
		return
	}
	if err := eh.editorService.RequestDelete(sid, c.Param("token")); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (eh *EditorHandler) ConfirmDelete(c *gin.Context) {
	sid, ok := uuidParam(c, "sid")
	if !ok {
		return
	}
	state, err := eh.editorService.ConfirmDelete(sid)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, state)
}

func (eh *EditorHandler) CancelDelete(c *gin.Context) {
	sid, ok := uuidParam(c, "sid")
	if !ok {
		return
	}
	if err := eh.editorService.CancelDelete(sid); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (eh *EditorHandler) SetInfo(c *gin.Context) {
	sid, ok := uuidParam(c, "sid")
	if !ok {
		return
	}
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := eh.editorService.SetInfo(sid, req.Title, req.Description); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (eh *EditorHandler) SetMeta(c *gin.Context) {
	sid, ok := uuidParam(c, "sid")
	if !ok {
		return
	}
	var req struct {
		VideoURL      string      `json:"video_url"`
		Difficulty    string      `json:"difficulty"`
		VocabularyIDs []uuid.UUID `json:"vocabulary_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := eh.editorService.SetMeta(sid, req.VideoURL, req.Difficulty, req.VocabularyIDs); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// Save runs the three-step persistence saga. A partial failure still
// returns the per-step outcome so the client can show what did land.
func (eh *EditorHandler) Save(c *gin.Context) {
	sid, ok := uuidParam(c, "sid")
	if !ok {
		return
	}
	outcome, err := eh.editorService.Save(c.Request.Context(), sid)
	if err != nil {
		ae := apierr.From(err)
		c.JSON(ae.Status, gin.H{
			"error": gin.H{"message": ae.Error(), "code": ae.Code},
			"steps": outcomeSteps(outcome),
		})
		return
	}
	response.RespondOK(c, gin.H{"ok": true, "steps": outcomeSteps(outcome)})
}

func outcomeSteps(outcome *services.SaveOutcome) []gin.H {
	if outcome == nil {
		return nil
	}
	steps := make([]gin.H, 0, len(outcome.Steps))
	for _, s := range outcome.Steps {
		steps = append(steps, gin.H{
			"name":    s.Name,
			"skipped": s.Skipped,
			"ok":      !s.Skipped && s.Err == nil,
		})
	}
	return steps
}
