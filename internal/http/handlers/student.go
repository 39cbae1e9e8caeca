package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
	"github.com/ngocanhdo/engkids-backend/internal/http/response"
	"github.com/ngocanhdo/engkids-backend/internal/services"
)

type StudentHandler struct {
	studentService services.StudentService
	contentService services.ContentService
}

func NewStudentHandler(studentService services.StudentService, contentService services.ContentService) *StudentHandler {
	return &StudentHandler{studentService: studentService, contentService: contentService}
}

func (sh *StudentHandler) Create(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		ClassName string `json:"class_name"`
		PinCode   string `json:"pin_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	student := types.Student{Name: req.Name, ClassName: req.ClassName}
	if req.PinCode != "" {
		student.PinCode = &req.PinCode
	}
	created, err := sh.studentService.Create(c.Request.Context(), &student)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, created)
}

func (sh *StudentHandler) List(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		students, err := sh.studentService.Search(c.Request.Context(), name, c.Query("class_name"))
		if err != nil {
			response.RespondAPIError(c, err)
			return
		}
		response.RespondOK(c, gin.H{"students": students})
		return
	}
	students, err := sh.studentService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"students": students})
}

func (sh *StudentHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	student, err := sh.studentService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, student)
}

func (sh *StudentHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := sh.studentService.Update(c.Request.Context(), id, fields); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (sh *StudentHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := sh.studentService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (sh *StudentHandler) RegenerateAvatar(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	student, err := sh.studentService.RegenerateAvatar(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, student)
}

func (sh *StudentHandler) ListScores(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	scores, err := sh.contentService.ListScoresByStudent(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"scores": scores})
}
