package handlers

import (
	"context"
	"mime/multipart"
	"yuepai/internal/filter"
	"yuepai/internal/models"
	"yuepai/internal/postdetail"
	"yuepai/internal/services"
)

// CatalogProvider 全局目录
type CatalogProvider interface {
	Catalog(ctx context.Context) (services.Catalog, error)
}

// PostStore 约拍的查询、保存和状态变更
type PostStore interface {
	List(ctx context.Context, f filter.Filter, page int) ([]models.Post, int64, error)
	Get(ctx context.Context, id uint) (*models.Post, error)
	Detail(ctx context.Context, id uint) (postdetail.State, error)
	HasRequested(ctx context.Context, postID, userID uint) (bool, error)
	Submit(ctx context.Context, post models.Post) (models.Post, error)
	Close(ctx context.Context, postID, actorID uint) (postdetail.State, error)
	AddRequest(ctx context.Context, postID, applicantID uint) (postdetail.State, error)
}

// RecentPostSource 最近的未关闭约拍
type RecentPostSource interface {
	Recent(ctx context.Context, limit int) ([]models.Post, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	IsNameUsed(ctx context.Context, name string) (bool, error)
	Brief(ctx context.Context, id uint) (services.UserBrief, error)
}

type NotificationStore interface {
	List(ctx context.Context, userID uint) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) (bool, error)
}

type ImageStore interface {
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*services.ImageUploadResult, error)
}
