package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
	"github.com/myflowlab/stem-certification-quiz/internal/importer"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

type mapping struct {
	err    error
	status int
	code   string
}

var mappings = []mapping{
	{entities.ErrMissingFields, http.StatusBadRequest, "missing_fields"},
	{entities.ErrInvalidAccessCode, http.StatusBadRequest, "invalid_access_code"},
	{entities.ErrInvalidChoice, http.StatusBadRequest, "invalid_choice"},
	{entities.ErrNotAtLastQuestion, http.StatusBadRequest, "not_at_last_question"},
	{importer.ErrUnsupportedFormat, http.StatusBadRequest, "unsupported_format"},
	{importer.ErrNoAccessCodeCol, http.StatusBadRequest, "no_access_code_column"},
	{entities.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{entities.ErrForbidden, http.StatusForbidden, "forbidden"},
	{entities.ErrAttemptsExhausted, http.StatusForbidden, "attempts_exhausted"},
	{entities.ErrNotCertified, http.StatusForbidden, "not_certified"},
	{entities.ErrQuestionNotFound, http.StatusNotFound, "question_not_found"},
	{entities.ErrSessionNotFound, http.StatusNotFound, "session_not_found"},
	{entities.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{entities.ErrDuplicateUsername, http.StatusConflict, "duplicate_username"},
	{entities.ErrAccessCodeAlreadyUsed, http.StatusConflict, "access_code_already_used"},
	{entities.ErrAlreadyCertified, http.StatusConflict, "already_certified"},
	{entities.ErrSessionClosed, http.StatusConflict, "session_closed"},
	{entities.ErrNoQuestions, http.StatusConflict, "no_questions"},
	{entities.ErrStorageUnavailable, http.StatusServiceUnavailable, "storage_unavailable"},
}

// Status maps a domain error to an HTTP status and an error code.
func Status(err error) (int, string) {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

// Fail responds with the status of a domain error.
// Storage and unexpected errors are not echoed to the client.
func Fail(c *gin.Context, err error) {
	status, code := Status(err)
	_ = c.Error(err)

	switch {
	case errors.Is(err, entities.ErrStorageUnavailable):
		RespondError(c, status, code, entities.ErrStorageUnavailable)
	case status == http.StatusInternalServerError:
		RespondError(c, status, code, errors.New("internal error"))
	default:
		RespondError(c, status, code, err)
	}
}
