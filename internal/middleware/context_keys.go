package middleware

import "github.com/gin-gonic/gin"

// userIDKey carries the authenticated user's ID through the request. Auth
// middleware sets it on both the gin context and the request context so
// services reached outside a handler can still attribute writes.
const userIDKey = contextKey("userID")

// GetUserIDFromContext returns the authenticated user ID for the request,
// checking the gin context first and the request context as a fallback.
// The second return is false when no authenticated user is attached.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if val, exists := c.Get(string(userIDKey)); exists {
		userID, ok := val.(string)
		return userID, ok && userID != ""
	}
	if val := c.Request.Context().Value(userIDKey); val != nil {
		userID, ok := val.(string)
		return userID, ok && userID != ""
	}
	return "", false
}
