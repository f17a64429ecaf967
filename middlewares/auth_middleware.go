package middlewares

import (
	"net/http"
	"strings"

	"go-bizops-dashboard/utils"

	"github.com/gin-gonic/gin"
)

func bearer(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// AdminAuth accepts only admin tokens and puts admin_id on the context.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearer(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Token not found"})
			c.Abort()
			return
		}

		claims, err := utils.ParseAdminToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// UserAuth accepts only user tokens. The permission codes signed into the
// token are stored under "perms" for RequirePerm.
func UserAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearer(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Token not found"})
			c.Abort()
			return
		}

		claims, err := utils.ParseUserToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("perms", claims.Permissions)
		c.Next()
	}
}

// RequirePerm must run after UserAuth.
func RequirePerm(code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, _ := c.Get("perms")
		perms, _ := v.([]string)
		for _, p := range perms {
			if strings.EqualFold(p, code) {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"message": "Missing permission " + code})
		c.Abort()
	}
}
