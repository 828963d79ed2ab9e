package controllers

import (
	"SmashSessions/middleware"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// @Summary Gateway login
// @Description Authenticates with the gateway secret and opens a cookie session for the given member identity, so the API can be driven from a browser or Swagger UI. Returns a JWT usable as a Bearer token as well.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param secret formData string true "Gateway secret"
// @Param user_id formData string true "Platform user id to act as"
// @Param username formData string false "Display name"
// @Param discriminator formData string false "Discriminator"
// @Success 200 {object} object{token=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /login [post]
func Login(c *gin.Context) {
	secret := c.PostForm("secret")
	userID := c.PostForm("user_id")

	// Minimum input sanitizing
	if strings.Trim(secret, " ") == "" || strings.Trim(userID, " ") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
		return
	}

	hash := os.Getenv("GATEWAY_SECRET_HASH")
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid gateway secret!"})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.CtxUserID, userID)
	session.Set(middleware.CtxUsername, c.PostForm("username"))
	session.Set(middleware.CtxDiscriminator, c.PostForm("discriminator"))
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":       userID,
		"username":      c.PostForm("username"),
		"discriminator": c.PostForm("discriminator"),
		"iat":           time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(os.Getenv("KEY")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": signed})
}

// Logout deletes the cookie session opened by Login.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/logout [delete]
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get(middleware.CtxUserID) == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session token"})
		return
	}
	session.Delete(middleware.CtxUserID)
	session.Delete(middleware.CtxUsername)
	session.Delete(middleware.CtxDiscriminator)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
