package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"souqd/internal/pkg/response"
	"souqd/internal/service"
	"souqd/internal/session"
)

type AccountHandler struct {
	profile  *service.ProfileService
	sessions *session.Manager
}

func NewAccountHandler(profile *service.ProfileService, sessions *session.Manager) *AccountHandler {
	return &AccountHandler{profile: profile, sessions: sessions}
}

type updateProfileRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type emailChangeRequest struct {
	NewEmail string `json:"new_email"`
	Code     string `json:"code"`
}

func (h *AccountHandler) Me(c *gin.Context) {
	p := h.profile.Me(c.Request.Context(), principal(c))
	response.OK(c, gin.H{
		"email":         p.Email,
		"name":          p.Name,
		"email_changed": p.EmailChanged,
		"name_changed":  p.NameChanged,
		"code":          p.Code,
	})
}

func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid input")
		return
	}
	field := strings.TrimSpace(req.Field)
	value := strings.TrimSpace(req.Value)
	newPrincipal, err := h.profile.UpdateProfile(c.Request.Context(), principal(c), field, value)
	if err != nil {
		handleError(c, err)
		return
	}
	if newPrincipal != principal(c) {
		h.sessions.SetPrincipal(c, newPrincipal)
	}
	response.OK(c, nil)
}

func (h *AccountHandler) RequestEmailChange(c *gin.Context) {
	var req emailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid input")
		return
	}
	err := h.profile.RequestEmailChange(c.Request.Context(), principal(c),
		strings.TrimSpace(req.NewEmail), strings.TrimSpace(req.Code))
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *AccountHandler) ConfirmEmailChange(c *gin.Context) {
	var req emailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "")
		return
	}
	newPrincipal, err := h.profile.ConfirmEmailChange(c.Request.Context(), principal(c),
		strings.TrimSpace(req.NewEmail), strings.TrimSpace(req.Code))
	if err != nil {
		handleError(c, err)
		return
	}
	h.sessions.SetPrincipal(c, newPrincipal)
	response.OK(c, nil)
}
