package handlers

import (
	"errors"
	"net/http"
	"yuepai/internal/logger"
	"yuepai/internal/middleware"
	"yuepai/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
		if count, ok := c.Get(middleware.UnreadCountKey); ok {
			obj["UnreadCount"] = int(count.(int64))
		} else {
			obj["UnreadCount"] = 0
		}
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError 错误页
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// Fail JSON 接口的错误响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   message,
	})
}

// errorStatus 业务错误对应的状态码，其余按服务器错误处理
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrPostNotFound), errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, services.ErrPostClosed),
		errors.Is(err, services.ErrOwnRequest),
		errors.Is(err, services.ErrDuplicateRequest),
		errors.Is(err, services.ErrUserNameUsed):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// errorMessage 服务器错误只记录日志，不把细节展示给用户
func errorMessage(c *gin.Context, err error) (int, string) {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		logger.From(c.Request.Context()).Error("request failed", zap.Error(err))
		return code, "服务器开小差了，请稍后再试"
	}
	return code, err.Error()
}
