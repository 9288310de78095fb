package models

import (
	"time"
)

// Request 应征记录，同一用户对同一约拍只能应征一次
type Request struct {
	ID          uint      `gorm:"primaryKey" json:"requestId"`
	PostID      uint      `gorm:"not null;uniqueIndex:idx_post_applicant" json:"postId"`
	Post        Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ApplicantID uint      `gorm:"not null;index;uniqueIndex:idx_post_applicant" json:"applicantId"`
	Applicant   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"applicant"`
	CreatedAt   time.Time `json:"createTime"`
}
