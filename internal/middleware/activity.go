package middleware

import (
	"bytes"
	"io"

	"github.com/yeheskieltame/spend-save-analyze/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ActivityMiddleware records mutating API calls of logged-in users so the
// history view can show what happened to the ledger and when.
func ActivityMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userID uint
		if user, ok := CurrentUser(c); ok {
			userID = user.ID
		}

		// keep a copy of the body for the action description
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		if userID == 0 {
			return
		}
		// reads are not worth logging
		if c.Request.Method == "GET" {
			return
		}

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 {
			action += " " + string(bodyBytes)
		}

		entry := models.ActivityLog{
			UserID:    userID,
			Method:    c.Request.Method,
			Path:      path,
			Action:    action,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		_ = db.Create(&entry).Error
	}
}
