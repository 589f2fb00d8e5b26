// Package respond writes handler results either as JSON or, for browser form
// posts, as a flash message followed by a 303 redirect.
package respond

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	apierrors "github.com/hireboard/hireboard/internal/errors"
)

const mimeJSON = "application/json"

// Page wraps the data of a GET endpoint with any pending flash messages.
type Page struct {
	Messages []string `json:"messages,omitempty"`
	Data     any      `json:"data"`
}

// WantsJSON reports whether the client sent or asked for JSON.
func WantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.ContentType(), mimeJSON) {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), mimeJSON)
}

// Flash queues a message for the next page the browser loads.
func Flash(c *gin.Context, message string) {
	if message == "" {
		return
	}
	session := sessions.Default(c)
	session.AddFlash(message)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}
}

// Flashes drains the queued messages.
func Flashes(c *gin.Context) []string {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		_ = c.Error(err)
	}

	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Redirect flashes message and sends a 303 to location.
func Redirect(c *gin.Context, location, message string) {
	Flash(c, message)
	c.Redirect(http.StatusSeeOther, location)
	c.Abort()
}

// JSON writes a page body with pending flashes.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, Page{Messages: Flashes(c), Data: data})
}

// Done reports a successful mutation: JSON clients get body, browsers are
// redirected to location with message.
func Done(c *gin.Context, status int, body any, location, message string) {
	if WantsJSON(c) {
		c.JSON(status, body)
		return
	}
	Redirect(c, location, message)
}

// Error reports a failed operation: JSON clients get an APIError with the
// status of the error kind, browsers are redirected to location with a
// user-facing message.
func Error(c *gin.Context, err error, location string) {
	if apierrors.KindOf(err) == apierrors.KindInternal {
		_ = c.Error(err)
	}
	if WantsJSON(c) {
		apierrors.Respond(c, err)
		return
	}
	Redirect(c, location, apierrors.MessageOf(err))
}
