package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"souqd/internal/pkg/response"
	"souqd/internal/service"
	"souqd/internal/session"
)

type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
}

func NewAuthHandler(auth *service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"pass"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"pass"`
}

type googleLoginRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "email and pass are required")
		return
	}
	email := strings.TrimSpace(req.Email)
	pass := strings.TrimSpace(req.Password)
	name := strings.TrimSpace(req.Name)
	if err := h.auth.Register(c.Request.Context(), email, pass, name); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// StorageDump is the disabled raw-dump endpoint. It always refuses; the user
// list is never exposed.
func (h *AuthHandler) StorageDump(c *gin.Context) {
	response.Fail(c, http.StatusNotFound, "not allowed")
}

func (h *AuthHandler) AccountExists(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	c.JSON(http.StatusOK, gin.H{"exists": h.auth.Exists(email)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "")
		return
	}
	email := strings.TrimSpace(req.Email)
	pass := strings.TrimSpace(req.Password)
	user, token, err := h.auth.Login(c.Request.Context(), email, pass)
	if err != nil {
		handleError(c, err)
		return
	}
	h.sessions.Establish(c, user.Email)
	response.OK(c, gin.H{"token": token})
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "")
		return
	}
	email := strings.TrimSpace(req.Email)
	token, err := h.auth.GoogleLogin(c.Request.Context(), email)
	if err != nil {
		handleError(c, err)
		return
	}
	h.sessions.Establish(c, email)
	response.OK(c, gin.H{"token": token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	response.OK(c, nil)
}
