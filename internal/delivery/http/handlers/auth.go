package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/myflowlab/stem-certification-quiz/internal/delivery/http/middleware"
	"github.com/myflowlab/stem-certification-quiz/internal/delivery/http/response"
	"github.com/myflowlab/stem-certification-quiz/internal/delivery/http/token"
	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
	"github.com/myflowlab/stem-certification-quiz/internal/service"
)

type AuthHandler struct {
	auth         AuthService
	quiz         QuizService
	tokens       *token.Manager
	secureCookie bool
	logger       *zap.Logger
}

func NewAuthHandler(auth AuthService, quiz QuizService, tokens *token.Manager, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		quiz:         quiz,
		tokens:       tokens,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

type signupRequest struct {
	Username   string `json:"username" form:"username"`
	Password   string `json:"password" form:"password"`
	AccessCode string `json:"access_code" form:"access_code"`
	FullName   string `json:"full_name" form:"full_name"`
	NRIC       string `json:"nric" form:"nric"`
	Email      string `json:"email" form:"email"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Username:   req.Username,
		Password:   req.Password,
		AccessCode: req.AccessCode,
		Identity: entities.Identity{
			FullName: req.FullName,
			NRIC:     req.NRIC,
			Email:    req.Email,
		},
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"username": user.Username})
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}

	role := token.RoleUser
	if h.auth.IsAdmin(user.Username) {
		role = token.RoleAdmin
	}

	signed, _, err := h.tokens.Issue(user.Username, role)
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, signed, int(h.tokens.TTL().Seconds()), "/", "", h.secureCookie, true)

	response.RespondOK(c, gin.H{
		"token":      signed,
		"expires_in": int(h.tokens.TTL().Seconds()),
		"username":   user.Username,
		"role":       role,
	})
}

// Logout drops the quiz session of this login. An unfinished quiz starts over on the next login.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.Claims(c)
	if err := h.quiz.Discard(c.Request.Context(), claims.SessionID); err != nil {
		h.logger.Warn("failed to discard quiz session",
			zap.String("username", claims.Username()),
			zap.Error(err),
		)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.secureCookie, true)
	response.RespondOK(c, gin.H{"ok": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.Claims(c)
	if claims.IsAdmin() {
		response.RespondOK(c, gin.H{"username": claims.Username(), "role": token.RoleAdmin})
		return
	}

	user, err := h.quiz.Status(c.Request.Context(), claims.Username())
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.RespondOK(c, gin.H{
		"username":      user.Username,
		"role":          token.RoleUser,
		"score":         user.Score,
		"certified":     user.Certified,
		"attempts":      user.Attempts,
		"attempts_left": user.AttemptsLeft(),
	})
}
