package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/collabhub-backend/internal/logger"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
)

// ErrorHandler отвечает на ошибки, добавленные через c.Error.
// Внутренние ошибки маскируются, клиент получает {"error": "..."}.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.StatusOf(err)

		if logger.Log != nil {
			entry := logger.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
				"status": status,
			})
			if status >= http.StatusInternalServerError {
				entry.Error("Request error")
			} else {
				entry.Debug("Request error")
			}
		}

		c.JSON(status, gin.H{"error": apperror.MessageOf(err)})
	}
}

// Recovery перехватывает panic в обработчиках и отвечает 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"panic":  recovered,
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Error("Panic recovered")
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
	})
}
