package handlers

import (
	"errors"
	"net/http"
	"strings"
	"yuepai/internal/logger"
	"yuepai/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 单张照片大小上限
const maxImageSize = 10 * 1024 * 1024

// ImageHandler 约拍照片上传
type ImageHandler struct {
	images ImageStore
}

func NewImageHandler(images ImageStore) *ImageHandler {
	return &ImageHandler{images: images}
}

// Upload 处理图片上传请求 (POST /api/upload)
func (h *ImageHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		Fail(c, http.StatusBadRequest, "请选择要上传的图片")
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		Fail(c, http.StatusBadRequest, "只允许上传图片文件")
		return
	}
	if header.Size > maxImageSize {
		Fail(c, http.StatusBadRequest, "图片大小不能超过 10MB")
		return
	}

	result, err := h.images.Upload(c.Request.Context(), file, header)
	if err != nil {
		if errors.Is(err, services.ErrUploadDisabled) {
			Fail(c, http.StatusServiceUnavailable, "图片上传暂未开放")
			return
		}
		logger.From(c.Request.Context()).Error("image upload failed", zap.Error(err))
		Fail(c, http.StatusBadGateway, "上传失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     result.URL,
		"id":      result.ID,
	})
}
