package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the data payload of the common JSON envelope.
type Response map[string]interface{}

// business codes
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeServerErr    = 50001
)

// Success 统一成功返回
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Info returns a success envelope with an informational notice, used for
// outcomes that are neither a change nor a failure (e.g. paying a debt that
// is already settled).
func Info(c *gin.Context, notice string, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code":   CodeOK,
		"notice": notice,
		"data":   data,
	})
}

// Error 统一错误返回
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}
