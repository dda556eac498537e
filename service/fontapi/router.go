package fontapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates a router serving the listing API below /api and, if
// fontDir is not empty, the files of fontDir below /fonts.
func NewRouter(h *Handler, fontDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), allowCrossOrigin())
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	h.RegisterRoutes(router.Group("/api"))
	if fontDir != "" {
		router.Static("/fonts", fontDir)
	}
	return router
}

// allowCrossOrigin lets browser clients of other origins read listings and
// fonts.
func allowCrossOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
