package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/merchant-dashboard-api/docs"
)

// SetupSwagger serves the API document at /swagger/doc.json and the UI for
// any other path below /swagger. A single catch-all route avoids gin's
// conflict between a static and a wildcard segment.
func SetupSwagger(router *gin.Engine) {
	router.GET("/swagger/*any", func(c *gin.Context) {
		switch strings.TrimPrefix(c.Param("any"), "/") {
		case "doc.json":
			c.Data(http.StatusOK, "application/json; charset=utf-8", docs.SwaggerJSON)
		case "":
			c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
		default:
			c.Data(http.StatusOK, "text/html; charset=utf-8", docs.IndexHTML)
		}
	})
}
