package handler

import "github.com/gin-gonic/gin"

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// Both cookies are httpOnly and secure; no explicit max-age, token expiry
// governs validity.
func setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie(accessTokenCookie, accessToken, 0, "/", "", true, true)
	c.SetCookie(refreshTokenCookie, refreshToken, 0, "/", "", true, true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetCookie(accessTokenCookie, "", -1, "/", "", true, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", true, true)
}
