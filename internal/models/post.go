package models

import (
	"time"
	"yuepai/internal/region"

	"github.com/lib/pq"
)

// Post 约拍信息
type Post struct {
	ID                 uint           `gorm:"primaryKey" json:"postId"`
	OwnerID            uint           `gorm:"not null;index" json:"ownerId"`
	Owner              User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	PhotoURLs          pq.StringArray `gorm:"column:photo_urls;type:text[]" json:"photoUrls"` // 最多 9 张
	RequiredRegionCode region.Code    `gorm:"not null;index" json:"requiredRegionCode"`       // 面向地区
	CostOption         string         `gorm:"size:20;not null" json:"costOption"`
	Cost               int            `gorm:"default:0" json:"cost"` // 单位：元，仅收费/付费时有意义
	Content            string         `gorm:"size:100;not null" json:"content"`
	Tags               pq.StringArray `gorm:"type:text[]" json:"tags"`
	RequestNum         int            `gorm:"default:0" json:"requestNum"` // 应征人数
	IsClosed           bool           `gorm:"default:false;index" json:"isClosed"`
	CreatedAt          time.Time      `json:"createTime"`
	UpdatedAt          time.Time      `json:"updateTime"`

	// 非数据库字段，查询时按地区目录填充
	RequiredRegionName string `gorm:"-" json:"requiredRegionName"`
}
