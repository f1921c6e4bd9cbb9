package auth

import "github.com/gin-gonic/gin"

func fromContext(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserID returns the authenticated user's id, or "" outside an
// authenticated request.
func GetUserID(c *gin.Context) string {
	return fromContext(c, ctxUserID)
}

// GetUserEmail returns the authenticated user's email, or "".
func GetUserEmail(c *gin.Context) string {
	return fromContext(c, ctxUserEmail)
}

// GetUserRole returns the role claim from the token, or "".
func GetUserRole(c *gin.Context) string {
	return fromContext(c, ctxUserRole)
}
