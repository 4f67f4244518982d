// Package session wraps the cookie-backed gin session with typed accessors
// for the logged-in user id and one-shot flash messages.
package session

import (
	"market/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const loginUserId = "LOGIN_USER_ID"

// SetLoginUser binds the session to a user id. The user record itself is
// re-resolved on every request so stale sessions degrade gracefully.
func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loginUserId, user.Id)
	return s.Save()
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	return s.Save()
}

// GetLoginUserId returns the user id bound to the session, 0 when the
// session carries no login.
func GetLoginUserId(c *gin.Context) int {
	s := sessions.Default(c)
	if obj := s.Get(loginUserId); obj != nil {
		if id, ok := obj.(int); ok {
			return id
		}
	}
	return 0
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUserId(c) > 0
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	if err := s.Save(); err != nil {
		return err
	}
	c.SetCookie("market", "", -1, "/", "", false, true)
	return nil
}

// AddFlash queues a one-shot message shown on the next rendered page.
func AddFlash(c *gin.Context, message string) error {
	s := sessions.Default(c)
	s.AddFlash(message)
	return s.Save()
}

// GetFlashes drains the queued flash messages.
func GetFlashes(c *gin.Context) []string {
	s := sessions.Default(c)
	flashes := s.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	// Reading flashes removes them; the session must be saved for that to
	// stick.
	_ = s.Save()

	messages := make([]string, 0, len(flashes))
	for _, flash := range flashes {
		if msg, ok := flash.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
