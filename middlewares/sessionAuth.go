package middlewares

import (
	"context"
	"errors"
	"net/http"

	"MedicAid/utils"

	"github.com/gin-gonic/gin"
)

// contextKey defines a custom context key type to store session details.
type contextKey string

const recordIDKey contextKey = "recordID"

// SessionAuthMiddleware validates the session cookie and adds the patient
// record key to the request context. The cookie is only a session pointer;
// clearing it on logout never touches stored data.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("sessionToken")
		if err != nil || token == "" {
			// Fallback for non-browser clients.
			token = c.DefaultQuery("sessionToken", "")
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing session token"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateSessionToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session token"})
			c.Abort()
			return
		}

		ctx := context.WithValue(c.Request.Context(), recordIDKey, claims.RecordID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ExtractRecordIDFromContext retrieves the patient record key from the
// context.
func ExtractRecordIDFromContext(ctx context.Context) (string, error) {
	recordID, ok := ctx.Value(recordIDKey).(string)
	if !ok {
		return "", errors.New("record ID not found in context")
	}
	return recordID, nil
}
