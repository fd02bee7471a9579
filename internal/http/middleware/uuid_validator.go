package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UUIDValidator проверяет, что параметры пути являются валидными UUID.
// Использование: router.GET("/offers/:id", UUIDValidator("id"), handler.GetOffer)
func UUIDValidator(paramNames ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range paramNames {
			value := c.Param(name)
			if value == "" {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "параметр " + name + " обязателен"})
				return
			}
			if _, err := uuid.Parse(value); err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "параметр " + name + " должен быть валидным UUID"})
				return
			}
		}
		c.Next()
	}
}
