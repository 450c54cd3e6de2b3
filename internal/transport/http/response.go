package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// apiResponse is the uniform envelope the storefront consumes.
type apiResponse struct {
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
	TotalCount int64  `json:"totalCount,omitempty"`
}

func respondOK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, apiResponse{Data: data, Message: message, Success: true})
}

func respondCreated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, apiResponse{Data: data, Message: message, Success: true})
}

func respondList(c *gin.Context, data any, totalCount int64) {
	c.JSON(http.StatusOK, apiResponse{Data: data, Success: true, TotalCount: totalCount})
}
