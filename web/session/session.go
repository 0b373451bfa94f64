// Package session wraps the cookie session for login state and flash
// notices.
package session

import (
	"encoding/gob"

	"github.com/Tushar-web474/ImageForge/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginUserID   = "USER_ID"
	loginUsername = "USERNAME"
)

// Flash is a one-shot user-facing notice. Category is one of "success",
// "error" or "warning".
type Flash struct {
	Message  string
	Category string
}

func init() {
	gob.Register(Flash{})
}

func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loginUserID, user.Id)
	s.Set(loginUsername, user.Username)
	return s.Save()
}

// GetUserID returns the logged-in user's id, or false when anonymous.
func GetUserID(c *gin.Context) (int, bool) {
	s := sessions.Default(c)
	if obj := s.Get(loginUserID); obj != nil {
		if id, ok := obj.(int); ok {
			return id, true
		}
	}
	return 0, false
}

func GetUsername(c *gin.Context) string {
	s := sessions.Default(c)
	if obj := s.Get(loginUsername); obj != nil {
		if name, ok := obj.(string); ok {
			return name
		}
	}
	return ""
}

func IsLogin(c *gin.Context) bool {
	_, ok := GetUserID(c)
	return ok
}

// ClearSession drops the login state. The cookie itself stays so a flash
// notice queued right after still reaches the next page.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(loginUserID)
	s.Delete(loginUsername)
	return s.Save()
}

// AddFlash queues a notice for the next rendered page.
func AddFlash(c *gin.Context, category, message string) {
	s := sessions.Default(c)
	s.AddFlash(Flash{Message: message, Category: category})
	_ = s.Save()
}

// TakeFlashes returns and consumes all queued notices.
func TakeFlashes(c *gin.Context) []Flash {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save()
	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes
}
