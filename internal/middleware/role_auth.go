package middleware

import (
	"errors"
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/job-marketplace-api/internal/constants"
	"github.com/yukikurage/job-marketplace-api/internal/database"
	apierrors "github.com/yukikurage/job-marketplace-api/internal/errors"
	"github.com/yukikurage/job-marketplace-api/internal/repository"
	"github.com/yukikurage/job-marketplace-api/internal/services"
)

// LoadPrincipal resolves the session user's profiles once per request. It must
// run after RequireAuth or OptionalAuth; anonymous requests pass through.
// A session pointing at a deleted user is cleared and answered with 401.
func LoadPrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			c.Next()
			return
		}

		resolver := services.NewPrincipalResolver(repository.NewUserRepository(database.GetDB()))
		principal, err := resolver.Resolve(userID)
		if err != nil {
			if errors.Is(err, services.ErrPrincipalAbsent) {
				session := sessions.Default(c)
				session.Clear()
				_ = session.Save()
				apierrors.Unauthorized(c, "Session user no longer exists")
				return
			}
			log.Printf("request %s: failed to resolve principal: %v", GetRequestID(c), err)
			apierrors.InternalError(c, "")
			return
		}

		c.Set(constants.ContextKeyPrincipal, principal)
		c.Next()
	}
}

// GetPrincipal returns the principal stored by LoadPrincipal
func GetPrincipal(c *gin.Context) (services.Principal, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return services.Principal{}, false
	}
	principal, ok := value.(services.Principal)
	return principal, ok
}

func requireRole(message string, allowed func(services.Principal) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := GetPrincipal(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			return
		}
		if !allowed(principal) {
			apierrors.Forbidden(c, message)
			return
		}
		c.Next()
	}
}

// RequireClient allows only users with a client profile
func RequireClient() gin.HandlerFunc {
	return requireRole("Client profile required", services.Principal.IsClient)
}

// RequireFreelancer allows only users with a freelancer profile
func RequireFreelancer() gin.HandlerFunc {
	return requireRole("Freelancer profile required", services.Principal.IsFreelancer)
}

// RequireAdmin allows only administrators
func RequireAdmin() gin.HandlerFunc {
	return requireRole("Admin privileges required", func(p services.Principal) bool { return p.IsAdmin })
}
