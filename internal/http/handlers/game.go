package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/http/response"
	"github.com/ngocanhdo/engkids-backend/internal/platform/ctxutil"
	"github.com/ngocanhdo/engkids-backend/internal/services"
)

type GameHandler struct {
	contentService services.ContentService
}

func NewGameHandler(contentService services.ContentService) *GameHandler {
	return &GameHandler{contentService: contentService}
}

func (gh *GameHandler) Create(c *gin.Context) {
	var game types.Game
	if err := c.ShouldBindJSON(&game); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	created, err := gh.contentService.CreateGame(c.Request.Context(), &game)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, created)
}

func (gh *GameHandler) List(c *gin.Context) {
	games, err := gh.contentService.ListGames(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"games": games})
}

func (gh *GameHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := gh.contentService.UpdateGame(c.Request.Context(), id, fields); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (gh *GameHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := gh.contentService.DeleteGame(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// RecordScore takes the player from the request principal, so guests (whose
// id is the nil UUID) fall through to the no-op path and registered
// students accumulate score and stars.
func (gh *GameHandler) RecordScore(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Score int `json:"score"`
		Stars int `json:"stars"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	p, _ := ctxutil.GetPrincipal(c.Request.Context())
	score := types.GameScore{
		StudentID: p.ID,
		GameID:    id,
		Score:     req.Score,
		Stars:     req.Stars,
	}
	recorded, err := gh.contentService.RecordScore(c.Request.Context(), &score)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if recorded == nil {
		// guest play: nothing persisted
		response.RespondOK(c, gin.H{"ok": true, "recorded": false})
		return
	}
	response.RespondOK(c, gin.H{"ok": true, "recorded": true, "score": recorded})
}
