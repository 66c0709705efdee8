package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

func SetSessionCookies(c *gin.Context, sessionToken, refreshToken string) {
	setCookie(c, "sessionToken", sessionToken, SessionTokenExpiry)
	setCookie(c, "refreshToken", refreshToken, RefreshTokenExpiry)
}

func setCookie(c *gin.Context, name, value string, expiry time.Duration) {
	secure := true
	if gin.Mode() == gin.DebugMode { // Toggle for local dev
		secure = false
	}
	c.SetCookie(name, value, int(expiry.Seconds()), "/", "", secure, true)
}

// ClearSessionCookies drops the session pointer. Stored patient data is
// deliberately left untouched.
func ClearSessionCookies(c *gin.Context) {
	clearCookie(c, "sessionToken")
	clearCookie(c, "refreshToken")
}

func clearCookie(c *gin.Context, name string) {
	secure := true
	if gin.Mode() == gin.DebugMode { // Toggle for local dev
		secure = false
	}
	c.SetCookie(name, "", -1, "/", "", secure, true)
}
