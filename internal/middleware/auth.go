package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hireboard/hireboard/internal/constants"
	apierrors "github.com/hireboard/hireboard/internal/errors"
	"github.com/hireboard/hireboard/internal/models"
	"github.com/hireboard/hireboard/internal/respond"
	"github.com/hireboard/hireboard/internal/services"
)

const loginPath = "/login"

// UserLoader resolves the session's user id to a user.
type UserLoader interface {
	GetUser(id uint64) (*models.User, error)
}

// RequireAuth reloads the session user on every request. Missing or
// deactivated users have their session cleared and are treated as anonymous.
func RequireAuth(users UserLoader, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := sessionUserID(session.Get(constants.ContextKeyUserID))
		if !ok {
			unauthenticated(c, "Please log in to continue")
			return
		}

		user, err := users.GetUser(userID)
		if err != nil {
			if apierrors.KindOf(err) != apierrors.KindNotFound {
				respond.Error(c, err, "/")
				return
			}
			clearSession(c, session, log)
			unauthenticated(c, "Please log in to continue")
			return
		}

		if !user.IsActive {
			clearSession(c, session, log)
			unauthenticated(c, services.ErrAccountDeactivated.Message)
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyActor, services.ActorFromUser(user))
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return sessionUserID(userID)
}

// GetActor retrieves the request identity set by RequireAuth.
func GetActor(c *gin.Context) (services.Actor, bool) {
	v, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return services.Actor{}, false
	}
	actor, ok := v.(services.Actor)
	return actor, ok
}

// sessionUserID accepts the integer types a session codec may hand back.
func sessionUserID(v any) (uint64, bool) {
	switch id := v.(type) {
	case uint64:
		return id, id > 0
	case uint:
		return uint64(id), id > 0
	case int64:
		return uint64(id), id > 0
	case int:
		return uint64(id), id > 0
	default:
		return 0, false
	}
}

func clearSession(c *gin.Context, session sessions.Session, log *zap.Logger) {
	session.Clear()
	if err := session.Save(); err != nil {
		log.Warn("failed to clear session", zap.Error(err))
	}
}

func unauthenticated(c *gin.Context, message string) {
	if respond.WantsJSON(c) {
		apierrors.Unauthorized(c, message)
		return
	}
	respond.Redirect(c, loginPath, message)
}
