package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

// ErrUploadDisabled 未配置 IMGUR_CLIENT_ID
var ErrUploadDisabled = errors.New("IMGUR_CLIENT_ID 未配置")

// ImgurResponse Imgur API 响应结构
type ImgurResponse struct {
	Data struct {
		ID         string `json:"id"`
		Link       string `json:"link"`
		DeleteHash string `json:"deletehash"`
		Type       string `json:"type"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// ImageUploadResult 上传结果
type ImageUploadResult struct {
	URL         string `json:"url"`          // 约拍照片中保存的链接
	OriginalURL string `json:"original_url"` // 原始 Imgur 链接
	ID          string `json:"id"`
}

// ImageUploader 上传约拍照片到 Imgur
type ImageUploader struct {
	ClientID string
	Endpoint string
	Client   *http.Client
}

func NewImageUploader(clientID string) *ImageUploader {
	return &ImageUploader{
		ClientID: clientID,
		Endpoint: "https://api.imgur.com/3/image",
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload 以 base64 表单上传图片
func (u *ImageUploader) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*ImageUploadResult, error) {
	if u.ClientID == "" {
		return nil, ErrUploadDisabled
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("读取文件失败: %w", err)
	}

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	if err := writer.WriteField("image", base64.StdEncoding.EncodeToString(fileBytes)); err != nil {
		return nil, fmt.Errorf("写入请求体失败: %w", err)
	}
	if err := writer.WriteField("type", "base64"); err != nil {
		return nil, fmt.Errorf("写入请求体失败: %w", err)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.Endpoint, &requestBody)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.ClientID)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("上传请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	var imgurResp ImgurResponse
	if err := json.Unmarshal(body, &imgurResp); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}
	if !imgurResp.Success {
		return nil, fmt.Errorf("Imgur 上传失败: status %d", imgurResp.Status)
	}

	return &ImageUploadResult{
		URL:         "https://i.imgur.com/" + imgurResp.Data.ID + imageExt(header.Filename, imgurResp.Data.Type),
		OriginalURL: imgurResp.Data.Link,
		ID:          imgurResp.Data.ID,
	}, nil
}

// imageExt 优先使用文件扩展名，否则按 MIME 类型推断
func imageExt(filename, mimeType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
