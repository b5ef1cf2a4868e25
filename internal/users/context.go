package users

import (
	"net/http"

	"skybook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

const actorContextKey = "actor"

// SetActor stores the authenticated actor on the request context.
func SetActor(c *gin.Context, actor Actor) {
	c.Set(actorContextKey, actor)
	c.Set("user_id", actor.UserID.String())
	c.Set("user_role", string(actor.Role))
}

// ActorFromContext returns the actor set by the auth middleware.
func ActorFromContext(c *gin.Context) (Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return Actor{}, false
	}
	actor, ok := v.(Actor)
	return actor, ok
}

// RequireActor returns the actor or writes a 401 and reports false.
func RequireActor(c *gin.Context) (Actor, bool) {
	actor, ok := ActorFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return Actor{}, false
	}
	return actor, true
}
