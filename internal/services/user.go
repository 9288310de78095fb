package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"yuepai/internal/models"
	"yuepai/internal/utils"

	"gorm.io/gorm"
)

// UserBrief 用户简要信息
type UserBrief struct {
	UserID    uint   `json:"userId"`
	UserName  string `json:"userName"`
	AvatarURL string `json:"avatarUrl"`
	Identity  string `json:"identity"`
	Gender    string `json:"gender"`
}

func BriefOf(u models.User) UserBrief {
	return UserBrief{
		UserID:    u.ID,
		UserName:  u.UserName,
		AvatarURL: u.Avatar,
		Identity:  u.Identity,
		Gender:    u.Gender,
	}
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// IsNameUsed 昵称是否已被占用
func (s *UserService) IsNameUsed(ctx context.Context, name string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("user_name = ?", strings.TrimSpace(name)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("查询昵称失败: %w", err)
	}
	return count > 0, nil
}

// Create 新建用户资料，未设置头像时按身份分配默认头像
func (s *UserService) Create(ctx context.Context, user *models.User) error {
	user.UserName = strings.TrimSpace(user.UserName)
	used, err := s.IsNameUsed(ctx, user.UserName)
	if err != nil {
		return err
	}
	if used {
		return ErrUserNameUsed
	}
	if user.Avatar == "" {
		user.Avatar = utils.DefaultAvatar(user.Identity)
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("创建用户失败: %w", err)
	}
	return nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

func (s *UserService) Brief(ctx context.Context, id uint) (UserBrief, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return UserBrief{}, err
	}
	return BriefOf(*user), nil
}
