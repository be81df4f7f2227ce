package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myflowlab/stem-certification-quiz/internal/certificate"
	"github.com/myflowlab/stem-certification-quiz/internal/delivery/http/middleware"
	"github.com/myflowlab/stem-certification-quiz/internal/delivery/http/response"
)

type CertificateHandler struct {
	certs CertificateService
}

func NewCertificateHandler(certs CertificateService) *CertificateHandler {
	return &CertificateHandler{certs: certs}
}

func (h *CertificateHandler) Download(c *gin.Context) {
	claims := middleware.Claims(c)
	doc, err := h.certs.Issue(c.Request.Context(), claims.Username())
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", certificate.FileName(claims.Username())))
	c.Data(http.StatusOK, "application/pdf", doc)
}
