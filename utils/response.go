package utils

import "github.com/gin-gonic/gin"

// Data writes a success response with the payload under "data".
func Data(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, gin.H{"data": data})
}

// DataWith writes a success response carrying "data" plus operation
// specific top-level fields.
func DataWith(ctx *gin.Context, status int, data interface{}, extra gin.H) {
	body := gin.H{"data": data}
	for k, v := range extra {
		body[k] = v
	}
	ctx.JSON(status, body)
}

// Error writes a terminal error response. Store failures should pass a
// generic message here and log the detail instead.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}
