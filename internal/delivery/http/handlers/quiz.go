package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/myflowlab/stem-certification-quiz/internal/delivery/http/middleware"
	"github.com/myflowlab/stem-certification-quiz/internal/delivery/http/response"
	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
)

type QuizHandler struct {
	quiz QuizService
}

func NewQuizHandler(quiz QuizService) *QuizHandler {
	return &QuizHandler{quiz: quiz}
}

func (h *QuizHandler) Start(c *gin.Context) {
	claims := middleware.Claims(c)
	view, err := h.quiz.Start(c.Request.Context(), claims.SessionID, claims.Username())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, view)
}

func (h *QuizHandler) Current(c *gin.Context) {
	claims := middleware.Claims(c)
	view, err := h.quiz.Current(c.Request.Context(), claims.SessionID, claims.Username())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, view)
}

type answerRequest struct {
	Index  *int   `json:"index" form:"index"`
	Choice string `json:"choice" form:"choice"`
}

func (h *QuizHandler) Answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, entities.ErrMissingFields)
		return
	}
	if req.Index == nil || req.Choice == "" {
		response.Fail(c, entities.ErrMissingFields)
		return
	}

	claims := middleware.Claims(c)
	view, err := h.quiz.Answer(c.Request.Context(), claims.SessionID, claims.Username(), *req.Index, req.Choice)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, view)
}

func (h *QuizHandler) Prev(c *gin.Context) {
	h.advance(c, entities.DirectionPrev)
}

func (h *QuizHandler) Next(c *gin.Context) {
	h.advance(c, entities.DirectionNext)
}

func (h *QuizHandler) advance(c *gin.Context, dir entities.Direction) {
	claims := middleware.Claims(c)
	view, err := h.quiz.Advance(c.Request.Context(), claims.SessionID, claims.Username(), dir)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, view)
}

func (h *QuizHandler) Submit(c *gin.Context) {
	claims := middleware.Claims(c)
	result, err := h.quiz.Submit(c.Request.Context(), claims.SessionID, claims.Username())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.RespondOK(c, result)
}
