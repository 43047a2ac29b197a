package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const readOnlyMessage = "The catalogue is read-only"

// ReadOnlyMiddleware rejects every request that could change the catalogue.
// GET, HEAD and OPTIONS pass through.
func ReadOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if isAPIRequest(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Error: readOnlyMessage,
				Code:  "read_only",
			})
			return
		}

		c.HTML(http.StatusForbidden, "error", gin.H{"Error": readOnlyMessage})
		c.Abort()
	}
}
