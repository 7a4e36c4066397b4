package session

import (
	"encoding/gob"

	"pillbox/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const identityKey = "IDENTITY"

// Identity is the single tagged session value: absent means anonymous,
// otherwise it names one account acting as either user or admin. The
// two independent flags of older designs ("user id" and "admin id"
// side by side) cannot be represented.
type Identity struct {
	UserId int
	Role   string
}

func init() {
	gob.Register(Identity{})
}

func SetIdentity(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(identityKey, Identity{UserId: user.Id, Role: user.Role})
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

func GetIdentity(c *gin.Context) *Identity {
	s := sessions.Default(c)
	if obj := s.Get(identityKey); obj != nil {
		if id, ok := obj.(Identity); ok {
			return &id
		}
	}
	return nil
}

func IsUser(c *gin.Context) bool {
	id := GetIdentity(c)
	return id != nil && id.Role == model.RoleUser
}

func IsAdmin(c *gin.Context) bool {
	id := GetIdentity(c)
	return id != nil && id.Role == model.RoleAdmin
}

// ClearIdentity drops whatever identity the session holds.
func ClearIdentity(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}

// AddFlash queues a one-time message shown on the next render.
func AddFlash(c *gin.Context, msg string) {
	s := sessions.Default(c)
	s.AddFlash(msg)
	_ = s.Save()
}

// Flashes drains the queued flash messages.
func Flashes(c *gin.Context) []string {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) > 0 {
		_ = s.Save()
	}
	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}
