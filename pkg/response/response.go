package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform JSON body for every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Success writes a 200 envelope with optional payload.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 envelope, used by create endpoints.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a 400 envelope.
func Fail(c *gin.Context, message string, detail interface{}) {
	FailWithStatus(c, http.StatusBadRequest, message, detail)
}

// FailWithStatus writes an error envelope with an explicit status code.
func FailWithStatus(c *gin.Context, status int, message string, detail interface{}) {
	c.JSON(status, Envelope{Success: false, Message: message, Error: detail})
}
