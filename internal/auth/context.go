package auth

import "github.com/gin-gonic/gin"

// GetUserID returns the authenticated user's ID, or "" on an
// unauthenticated context.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(ctxUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IsSystemAdmin reports whether the authenticated user carries the
// platform-admin flag. The flag reflects the user at token issue time.
func IsSystemAdmin(c *gin.Context) bool {
	if v, ok := c.Get(ctxSysAdmin); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}
