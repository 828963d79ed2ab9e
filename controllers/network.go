package controllers

import (
	"github.com/gin-gonic/gin"
)

// @Summary Test connectivity
// @Description Returns "pong" if the server is up
// @Tags network
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(200, gin.H{"message": "pong"})
}
