package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	stdhttp "net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/myflowlab/stem-certification-quiz/internal/certificate"
	httpH "github.com/myflowlab/stem-certification-quiz/internal/delivery/http/handlers"
	httpMW "github.com/myflowlab/stem-certification-quiz/internal/delivery/http/middleware"
	"github.com/myflowlab/stem-certification-quiz/internal/delivery/http/response"
	"github.com/myflowlab/stem-certification-quiz/internal/delivery/http/token"
	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
	"github.com/myflowlab/stem-certification-quiz/internal/infra/memory"
	"github.com/myflowlab/stem-certification-quiz/internal/repository"
	"github.com/myflowlab/stem-certification-quiz/internal/service"
	"github.com/myflowlab/stem-certification-quiz/internal/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	logger := zap.NewNop()
	store := memory.NewTableStore()

	users := repository.NewUserRepository(store)
	questions := repository.NewQuestionRepository(store)
	accessCodes := repository.NewAccessCodeRepository(store)

	for _, correct := range []string{"a", "b", "c", "d"} {
		require.NoError(t, questions.Add(ctx, entities.Question{
			Text:          "Q" + correct,
			OptionA:       "1",
			OptionB:       "2",
			OptionC:       "3",
			OptionD:       "4",
			CorrectAnswer: correct,
		}))
	}
	_, err := accessCodes.Merge(ctx, []entities.AccessCodeEntry{
		{AccessCode: "C1", Activated: true},
		{AccessCode: "C2", Activated: true},
		{AccessCode: "OFF", Activated: false},
	})
	require.NoError(t, err)

	authService := service.NewAuthService(users, accessCodes, service.AuthConfig{
		AdminUsername: "admin",
		AdminPassword: "root",
	}, logger)
	quizService := service.NewQuizService(users, questions, storage.NewQuizStorage(0), logger)
	adminService := service.NewAdminService(users, questions, accessCodes, logger)
	generator := certificate.NewGenerator(certificate.DefaultLayout(), certificate.NewPDFRenderer(), false)
	certService := service.NewCertificateService(users, generator, storage.NopArchive{}, logger)

	tokens := token.NewManager("test-secret", time.Hour)

	return NewRouter(RouterConfig{
		Logger:             logger,
		AuthMiddleware:     httpMW.NewAuthMiddleware(logger, tokens),
		AuthHandler:        httpH.NewAuthHandler(authService, quizService, tokens, false, logger),
		QuizHandler:        httpH.NewQuizHandler(quizService),
		CertificateHandler: httpH.NewCertificateHandler(certService),
		AdminHandler:       httpH.NewAdminHandler(adminService, certService),
		HealthHandler:      httpH.NewHealthHandler(),
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env response.ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Error.Code
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := doJSON(t, r, stdhttp.MethodPost, "/api/login", "", gin.H{"username": username, "password": password})
	require.Equal(t, stdhttp.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func signup(t *testing.T, r *gin.Engine, username, code string) {
	t.Helper()
	w := doJSON(t, r, stdhttp.MethodPost, "/api/signup", "", gin.H{
		"username":    username,
		"password":    "pw",
		"access_code": code,
	})
	require.Equal(t, stdhttp.StatusCreated, w.Code, w.Body.String())
}

func answerAll(t *testing.T, r *gin.Engine, tok string, answers []string) {
	t.Helper()
	for i, a := range answers {
		w := doJSON(t, r, stdhttp.MethodPost, "/api/quiz/answer", tok, gin.H{"index": i, "choice": a})
		require.Equal(t, stdhttp.StatusOK, w.Code, w.Body.String())
		if i < len(answers)-1 {
			w = doJSON(t, r, stdhttp.MethodPost, "/api/quiz/next", tok, nil)
			require.Equal(t, stdhttp.StatusOK, w.Code, w.Body.String())
		}
	}
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(stdhttp.MethodGet, "/healthcheck", nil))
	assert.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestSignupErrors(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	signup(t, r, "alice", "C1")

	tests := []struct {
		name       string
		body       gin.H
		wantStatus int
		wantCode   string
	}{
		{
			name:       "duplicate username",
			body:       gin.H{"username": "alice", "password": "pw", "access_code": "C2"},
			wantStatus: stdhttp.StatusConflict,
			wantCode:   "duplicate_username",
		},
		{
			name:       "code reused by another username",
			body:       gin.H{"username": "bob", "password": "pw", "access_code": "C1"},
			wantStatus: stdhttp.StatusConflict,
			wantCode:   "access_code_already_used",
		},
		{
			name:       "inactive code",
			body:       gin.H{"username": "bob", "password": "pw", "access_code": "OFF"},
			wantStatus: stdhttp.StatusBadRequest,
			wantCode:   "invalid_access_code",
		},
		{
			name:       "missing fields",
			body:       gin.H{"username": "bob"},
			wantStatus: stdhttp.StatusBadRequest,
			wantCode:   "missing_fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, stdhttp.MethodPost, "/api/signup", "", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, w))
		})
	}
}

func TestSignupForm(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	form := url.Values{"username": {"carol"}, "password": {"pw"}, "access_code": {"C2"}}
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, stdhttp.StatusCreated, w.Code, w.Body.String())

	login(t, r, "carol", "pw")

	w = doJSON(t, r, stdhttp.MethodPost, "/api/login", "", gin.H{"username": "carol", "password": "PW"})
	assert.Equal(t, stdhttp.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", errorCode(t, w))
}

func TestQuizFlow_PassAndCertificate(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	signup(t, r, "alice", "C1")
	tok := login(t, r, "alice", "pw")

	w := doJSON(t, r, stdhttp.MethodPost, "/api/quiz/start", tok, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code, w.Body.String())

	var view entities.QuestionView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, 4, view.Total)

	w = doJSON(t, r, stdhttp.MethodPost, "/api/quiz/submit", tok, nil)
	assert.Equal(t, stdhttp.StatusBadRequest, w.Code)
	assert.Equal(t, "not_at_last_question", errorCode(t, w))

	w = doJSON(t, r, stdhttp.MethodGet, "/api/certificate", tok, nil)
	assert.Equal(t, stdhttp.StatusForbidden, w.Code)

	answerAll(t, r, tok, []string{"a", "b", "c", "a"})

	w = doJSON(t, r, stdhttp.MethodPost, "/api/quiz/submit", tok, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code, w.Body.String())

	var result entities.QuizResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 75, result.Score)
	assert.True(t, result.Certified)
	assert.Equal(t, 0, result.Attempts)

	w = doJSON(t, r, stdhttp.MethodPost, "/api/quiz/start", tok, nil)
	assert.Equal(t, stdhttp.StatusConflict, w.Code)
	assert.Equal(t, "already_certified", errorCode(t, w))

	w = doJSON(t, r, stdhttp.MethodGet, "/api/certificate", tok, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	adminTok := login(t, r, "admin", "root")
	w = doJSON(t, r, stdhttp.MethodGet, "/api/admin/certified", adminTok, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.JSONEq(t, `{"users":[{"username":"alice","score":75}]}`, w.Body.String())

	w = doJSON(t, r, stdhttp.MethodGet, "/api/admin/certificates.zip", adminTok, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
}

func TestQuizFlow_FailuresExhaustAttempts(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	signup(t, r, "bob", "C2")
	tok := login(t, r, "bob", "pw")

	for attempt := 1; attempt <= entities.MaxAttempts; attempt++ {
		w := doJSON(t, r, stdhttp.MethodPost, "/api/quiz/start", tok, nil)
		require.Equal(t, stdhttp.StatusOK, w.Code, w.Body.String())

		answerAll(t, r, tok, []string{"b", "a", "a", "a"})

		w = doJSON(t, r, stdhttp.MethodPost, "/api/quiz/submit", tok, nil)
		require.Equal(t, stdhttp.StatusOK, w.Code, w.Body.String())

		var result entities.QuizResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, 0, result.Score)
		assert.False(t, result.Certified)
		assert.Equal(t, attempt, result.Attempts)
	}

	w := doJSON(t, r, stdhttp.MethodPost, "/api/quiz/start", tok, nil)
	assert.Equal(t, stdhttp.StatusForbidden, w.Code)
	assert.Equal(t, "attempts_exhausted", errorCode(t, w))

	w = doJSON(t, r, stdhttp.MethodGet, "/api/me", tok, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	var me struct {
		Attempts     int `json:"attempts"`
		AttemptsLeft int `json:"attempts_left"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, 3, me.Attempts)
	assert.Equal(t, 0, me.AttemptsLeft)
}

func TestLogoutDiscardsSession(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	signup(t, r, "alice", "C1")
	tok := login(t, r, "alice", "pw")

	w := doJSON(t, r, stdhttp.MethodPost, "/api/quiz/start", tok, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)

	w = doJSON(t, r, stdhttp.MethodPost, "/api/logout", tok, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)

	w = doJSON(t, r, stdhttp.MethodGet, "/api/quiz", tok, nil)
	assert.Equal(t, stdhttp.StatusNotFound, w.Code)
	assert.Equal(t, "session_not_found", errorCode(t, w))
}

func TestAdminQuestionsAndRoster(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)
	signup(t, r, "alice", "C1")

	userTok := login(t, r, "alice", "pw")
	w := doJSON(t, r, stdhttp.MethodGet, "/api/admin/questions", userTok, nil)
	assert.Equal(t, stdhttp.StatusForbidden, w.Code)

	tok := login(t, r, "admin", "root")

	w = doJSON(t, r, stdhttp.MethodPost, "/api/admin/questions", tok, gin.H{
		"question": "2+2?", "option_a": "1", "option_b": "2", "option_c": "3", "option_d": "4", "correct_answer": "D",
	})
	require.Equal(t, stdhttp.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, stdhttp.MethodPost, "/api/admin/questions", tok, gin.H{"question": "incomplete"})
	assert.Equal(t, stdhttp.StatusBadRequest, w.Code)
	assert.Equal(t, "missing_fields", errorCode(t, w))

	w = doJSON(t, r, stdhttp.MethodDelete, "/api/admin/questions/0", tok, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)

	w = doJSON(t, r, stdhttp.MethodDelete, "/api/admin/questions/99", tok, nil)
	assert.Equal(t, stdhttp.StatusNotFound, w.Code)

	w = doJSON(t, r, stdhttp.MethodGet, "/api/admin/questions", tok, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	var list struct {
		Questions []entities.Question `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Questions, 4)
	assert.Equal(t, "Qb", list.Questions[0].Text)
	assert.Equal(t, "2+2?", list.Questions[3].Text)
	assert.Equal(t, "d", list.Questions[3].CorrectAnswer)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "roster.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Access Code,Name,NRIC,Email\nC2,Dup,1,d@x.com\nC3,New,2,n@x.com\nC3,Again,3,a@x.com\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(stdhttp.MethodPost, "/api/admin/roster/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, stdhttp.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"added":1,"skipped":2}`, w.Body.String())

	w = doJSON(t, r, stdhttp.MethodGet, "/api/admin/roster", tok, nil)
	require.Equal(t, stdhttp.StatusOK, w.Code)
	var roster struct {
		Roster []struct {
			AccessCode string `json:"access_code"`
			Activated  bool   `json:"activated"`
		} `json:"roster"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &roster))
	require.Len(t, roster.Roster, 4)
	assert.Equal(t, "C3", roster.Roster[3].AccessCode)
	assert.True(t, roster.Roster[3].Activated)
}
