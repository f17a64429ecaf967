package utils

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		"data":    data,
	})
}

// Error writes message only. err is logged server side and never sent to the
// client.
func Error(c *gin.Context, status int, message string, err error) {
	LogError(c, message, err)
	c.JSON(status, gin.H{"message": message})
}

// LogError logs a failure that does not change the response.
func LogError(c *gin.Context, message string, err error) {
	if err != nil {
		log.Printf("%s %s: %s: %v", c.Request.Method, c.FullPath(), message, err)
	}
}

// Invalid reports the fields that block a commit.
func Invalid(c *gin.Context, message string, fields []string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": message,
		"fields":  fields,
	})
}
