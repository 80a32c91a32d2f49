package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode switches gin to release mode in production. Other environments
// keep gin's debug output.
func SetGinMode(env string) {
	switch env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}
}
