package handlers

import (
	"net/http"

	"peerly/internal/validation"

	"github.com/gin-gonic/gin"
)

const (
	validationCode    = "invalid recognition"
	validationMessage = "invalid recognition Data"
	internalMessage   = "internal server error"
)

// respondData 成功响应 {data: ...}
func respondData(c *gin.Context, code int, data any) {
	c.JSON(code, gin.H{"data": data})
}

// respondError 简单错误 {error: {message}}，并终止后续 handler
func respondError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{
		"error": gin.H{"message": message},
	})
}

// respondValidation 400，带每个字段的错误信息
func respondValidation(c *gin.Context, errs validation.Errors) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error": gin.H{
			"code":    validationCode,
			"message": validationMessage,
			"fields":  errs.Fields(),
		},
	})
}

// respondInternal 500，原因只写日志不返回给调用方
func respondInternal(c *gin.Context) {
	respondError(c, http.StatusInternalServerError, internalMessage)
}
