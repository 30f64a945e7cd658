package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"souqd/internal/pkg/response"
	"souqd/internal/service"
	"souqd/internal/session"
)

type VerificationHandler struct {
	verify   *service.VerificationService
	sessions *session.Manager
}

func NewVerificationHandler(verify *service.VerificationService, sessions *session.Manager) *VerificationHandler {
	return &VerificationHandler{verify: verify, sessions: sessions}
}

type codeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_pass"`
	Token       string `json:"token"`
}

func (h *VerificationHandler) RequestCode(c *gin.Context) {
	var req codeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "")
		return
	}
	err := h.verify.RequestCode(c.Request.Context(), strings.TrimSpace(req.Email), strings.TrimSpace(req.Code))
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// VerifyCode also establishes the session: a verified mailbox is proof enough
// of ownership to act as the principal.
func (h *VerificationHandler) VerifyCode(c *gin.Context) {
	var req codeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "")
		return
	}
	email := strings.TrimSpace(req.Email)
	token, err := h.verify.VerifyCode(c.Request.Context(), email, strings.TrimSpace(req.Code))
	if err != nil {
		handleError(c, err)
		return
	}
	h.sessions.Establish(c, email)
	response.OK(c, gin.H{"token": token})
}

func (h *VerificationHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "")
		return
	}
	err := h.verify.ResetPassword(c.Request.Context(),
		strings.TrimSpace(req.Email), strings.TrimSpace(req.NewPassword), strings.TrimSpace(req.Token))
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}
