package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"userId"`
	UserName  string    `gorm:"size:30;uniqueIndex;not null" json:"userName"`
	Identity  string    `gorm:"size:20;not null;index" json:"identity"` // 摄影师、模特……
	Gender    string    `gorm:"size:4;not null;index" json:"gender"`
	Avatar    string    `gorm:"default:📷" json:"avatarUrl"` // emoji 或图片链接
	Email     string    `gorm:"size:100" json:"-"`          // 可选，用于应征通知
	CreatedAt time.Time `json:"createTime"`
	UpdatedAt time.Time `json:"updateTime"`
}
