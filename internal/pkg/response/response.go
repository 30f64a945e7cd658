package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes the success envelope {"ok":true, ...extra}.
func OK(c *gin.Context, extra gin.H) {
	body := gin.H{"ok": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail writes {"ok":false} with an optional error message.
func Fail(c *gin.Context, status int, message string) {
	body := gin.H{"ok": false}
	if message != "" {
		body["error"] = message
	}
	c.JSON(status, body)
}
