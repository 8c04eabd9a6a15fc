package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/constants"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// RequireBoardAccess gates every board-scoped route. It resolves the
// :boardId path parameter through the access service and stashes the
// caller's role in context. A missing or closed board denies with the
// same 403 as a membership miss so board existence is not leaked.
func RequireBoardAccess(access *services.AccessService) gin.HandlerFunc {
	return func(c *gin.Context) {
		boardID := c.Param("boardId")
		if boardID == "" {
			apierrors.BadRequest(c, "Invalid board ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		decision, err := access.CheckAccess(boardID, userID)
		if err != nil {
			apierrors.InternalError(c, "Failed to check board access")
			c.Abort()
			return
		}
		if !decision.Allowed {
			apierrors.Forbidden(c, "Board access denied")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyBoardRole, decision.Role)
		c.Next()
	}
}

// RequireBoardRole restricts a route to the given roles. It must run after
// RequireBoardAccess; the owner always passes.
func RequireBoardRole(roles ...models.BoardRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetBoardRole(c)
		if !ok {
			apierrors.Forbidden(c, "Board access required")
			c.Abort()
			return
		}

		if role == models.RoleOwner {
			c.Next()
			return
		}
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "Insufficient board role")
		c.Abort()
	}
}

// GetBoardRole retrieves the caller's resolved board role from context.
func GetBoardRole(c *gin.Context) (models.BoardRole, bool) {
	v, exists := c.Get(constants.ContextKeyBoardRole)
	if !exists {
		return "", false
	}
	role, ok := v.(models.BoardRole)
	return role, ok
}
