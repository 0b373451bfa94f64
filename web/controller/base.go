// Package controller provides the HTTP request handlers for imageforge:
// account routes, image generation and the per-user image history.
package controller

import (
	"net/http"

	"github.com/Tushar-web474/ImageForge/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides common functionality for all controllers,
// including the authentication gate.
type BaseController struct{}

// checkLogin is a middleware that rejects anonymous requests before the
// guarded handler runs, with a notice and a redirect to the login page.
// AJAX requests get a JSON 401 instead of the redirect.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "Please log in to access this page.")
		} else {
			session.AddFlash(c, "error", "Please log in to access this page.")
			c.Redirect(http.StatusFound, "/login")
		}
		c.Abort()
	} else {
		c.Next()
	}
}
