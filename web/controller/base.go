// Package controller provides the HTTP request handlers for the pillbox
// web application: account routes, medicine CRUD, and admin operations.
package controller

import (
	"net/http"

	"pillbox/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the session checks shared by all controllers.
type BaseController struct{}

// checkUser admits only regular-user sessions.
func (a *BaseController) checkUser(c *gin.Context) {
	if !session.IsUser(c) {
		a.reject(c)
		return
	}
	c.Next()
}

// checkLogin admits any authenticated session, user or admin.
func (a *BaseController) checkLogin(c *gin.Context) {
	if session.GetIdentity(c) == nil {
		a.reject(c)
		return
	}
	c.Next()
}

// checkAdmin admits only admin sessions.
func (a *BaseController) checkAdmin(c *gin.Context) {
	if !session.IsAdmin(c) {
		a.reject(c)
		return
	}
	c.Next()
}

func (a *BaseController) reject(c *gin.Context) {
	if isAjax(c) {
		pureJsonMsg(c, http.StatusUnauthorized, false, "please log in again")
	} else {
		c.Redirect(http.StatusFound, "/login")
	}
	c.Abort()
}
