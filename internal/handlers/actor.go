package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/hireboard/hireboard/internal/middleware"
	"github.com/hireboard/hireboard/internal/respond"
	"github.com/hireboard/hireboard/internal/services"
	"github.com/hireboard/hireboard/internal/utils"
)

var errBadID = services.ErrInvalidID

// actorOf returns the request identity; routes without RequireAuth get
// an anonymous actor that fails every role check.
func actorOf(c *gin.Context) services.Actor {
	actor, _ := middleware.GetActor(c)
	return actor
}

// idParam parses :id or answers with a validation error redirecting to fallback.
func idParam(c *gin.Context, fallback string) (uint64, bool) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		respond.Error(c, errBadID, fallback)
	}
	return id, ok
}
