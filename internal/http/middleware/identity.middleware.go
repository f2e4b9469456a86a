package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/datamaphq/datamap/internal/appcontext"
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/datamaphq/datamap/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdentityMiddleware resolves the request identity from a JWT carried in the
// Authorization header or the token cookie. Outside production, requests
// without a token fall back to the development user so the dashboard works
// without a configured OAuth flow.
func IdentityMiddleware(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)

		if tokenString != "" {
			claims, err := utils.ValidateJWT(tokenString)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				return
			}
			c.Set("claims", claims)
			c.Next()
			return
		}

		if os.Getenv("ENVIRONMENT") == "production" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := devUser(ctx)
		if err != nil {
			ctx.Logger.Error("Failed to resolve development user", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve identity"})
			return
		}

		c.Set("claims", &utils.Claims{UserID: user.ID.String()})
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}

func devUser(ctx *appcontext.Context) (entity.User, error) {
	email := os.Getenv("DEV_USER_EMAIL")
	if email == "" {
		email = "dev@datamap.local"
	}

	var user entity.User
	err := ctx.DB.Where(entity.User{Email: email}).
		Attrs(entity.User{Name: "Dev User", Role: "admin", Status: "active"}).
		FirstOrCreate(&user).Error
	return user, err
}
