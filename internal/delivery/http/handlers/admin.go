package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/myflowlab/stem-certification-quiz/internal/delivery/http/response"
	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
)

type AdminHandler struct {
	admin AdminService
	certs CertificateService
}

func NewAdminHandler(admin AdminService, certs CertificateService) *AdminHandler {
	return &AdminHandler{admin: admin, certs: certs}
}

type questionRequest struct {
	Question      string `json:"question" form:"question"`
	OptionA       string `json:"option_a" form:"option_a"`
	OptionB       string `json:"option_b" form:"option_b"`
	OptionC       string `json:"option_c" form:"option_c"`
	OptionD       string `json:"option_d" form:"option_d"`
	CorrectAnswer string `json:"correct_answer" form:"correct_answer"`
}

func (r questionRequest) toEntity() entities.Question {
	return entities.Question{
		Text:          r.Question,
		OptionA:       r.OptionA,
		OptionB:       r.OptionB,
		OptionC:       r.OptionC,
		OptionD:       r.OptionD,
		CorrectAnswer: r.CorrectAnswer,
	}
}

func (h *AdminHandler) ListQuestions(c *gin.Context) {
	questions, err := h.admin.ListQuestions(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	if questions == nil {
		questions = []entities.Question{}
	}
	response.RespondOK(c, gin.H{"questions": questions})
}

func (h *AdminHandler) AddQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBind(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.admin.AddQuestion(c.Request.Context(), req.toEntity()); err != nil {
		response.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (h *AdminHandler) UpdateQuestion(c *gin.Context) {
	index, ok := questionIndex(c)
	if !ok {
		return
	}
	var req questionRequest
	if err := c.ShouldBind(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.admin.UpdateQuestion(c.Request.Context(), index, req.toEntity()); err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (h *AdminHandler) DeleteQuestion(c *gin.Context) {
	index, ok := questionIndex(c)
	if !ok {
		return
	}
	if err := h.admin.DeleteQuestion(c.Request.Context(), index); err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

type rosterEntry struct {
	AccessCode string `json:"access_code"`
	Activated  bool   `json:"activated"`
	Name       string `json:"name"`
	NRIC       string `json:"nric"`
	Email      string `json:"email"`
}

func (h *AdminHandler) ListRoster(c *gin.Context) {
	entries, err := h.admin.ListRoster(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	out := make([]rosterEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, rosterEntry{
			AccessCode: e.AccessCode,
			Activated:  e.Activated,
			Name:       e.Name,
			NRIC:       e.NRIC,
			Email:      e.Email,
		})
	}
	response.RespondOK(c, gin.H{"roster": out})
}

func (h *AdminHandler) UploadRoster(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_file", err)
		return
	}
	defer f.Close()

	report, err := h.admin.ImportRoster(c.Request.Context(), f, fh.Filename)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, report)
}

type certifiedUser struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

func (h *AdminHandler) CertifiedUsers(c *gin.Context) {
	users, err := h.admin.CertifiedUsers(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	out := make([]certifiedUser, 0, len(users))
	for _, u := range users {
		out = append(out, certifiedUser{Username: u.Username, Score: u.Score})
	}
	response.RespondOK(c, gin.H{"users": out})
}

// CertificatesZip builds the whole bundle in memory before responding.
func (h *AdminHandler) CertificatesZip(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.certs.WriteBundle(c.Request.Context(), &buf); err != nil {
		response.Fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="certificates.zip"`)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

func questionIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_index", err)
		return 0, false
	}
	return index, true
}
