package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestCodeValidation(t *testing.T) {
	c := newClient(t, setupServer(t))

	for _, code := range []string{"", "12345", "1234567", "12a456"} {
		resp := c.do(http.MethodPost, "/api/request_code", map[string]string{"email": "a@x.com", "code": code})
		require.Equal(t, http.StatusBadRequest, resp.Code, "code %q", code)
	}
	resp := c.do(http.MethodPost, "/api/request_code", map[string]string{"email": "", "code": "123456"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	resp = c.do(http.MethodPost, "/api/request_code", map[string]string{"email": "a@x.com", "code": "123456"})
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestVerifyCodeAndResetPassword(t *testing.T) {
	srv := setupServer(t)
	c := newClient(t, srv)
	register(t, c, "a@x.com", "old-pw", "")

	resp := c.do(http.MethodPost, "/api/request_code", map[string]string{"email": "a@x.com", "code": "123456"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = c.do(http.MethodPost, "/api/verify_code", map[string]string{"email": "a@x.com", "code": "000000"})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = c.do(http.MethodPost, "/api/verify_code", map[string]string{"email": "a@x.com", "code": "123456"})
	require.Equal(t, http.StatusOK, resp.Code)
	token, _ := decode(t, resp)["token"].(string)
	require.NotEmpty(t, token)

	// verification establishes the session
	resp = c.do(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "a@x.com", decode(t, resp)["email"])

	// the code was consumed; it cannot verify twice
	resp = c.do(http.MethodPost, "/api/verify_code", map[string]string{"email": "a@x.com", "code": "123456"})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = c.do(http.MethodPost, "/api/reset_password", map[string]string{
		"email": "a@x.com", "new_pass": "new-pw", "token": "bogus",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = c.do(http.MethodPost, "/api/reset_password", map[string]string{
		"email": "a@x.com", "new_pass": "new-pw", "token": token,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	login(t, newClient(t, srv), "a@x.com", "new-pw")

	// the token was single-use
	resp = c.do(http.MethodPost, "/api/reset_password", map[string]string{
		"email": "a@x.com", "new_pass": "again", "token": token,
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestResetPasswordUnknownUser(t *testing.T) {
	c := newClient(t, setupServer(t))

	resp := c.do(http.MethodPost, "/api/request_code", map[string]string{"email": "ghost@x.com", "code": "123456"})
	require.Equal(t, http.StatusOK, resp.Code)
	resp = c.do(http.MethodPost, "/api/verify_code", map[string]string{"email": "ghost@x.com", "code": "123456"})
	require.Equal(t, http.StatusOK, resp.Code)
	token, _ := decode(t, resp)["token"].(string)

	resp = c.do(http.MethodPost, "/api/reset_password", map[string]string{
		"email": "ghost@x.com", "new_pass": "pw", "token": token,
	})
	require.Equal(t, http.StatusNotFound, resp.Code)
}
