package services

import (
	"context"
	"errors"
	"fmt"
	"yuepai/internal/filter"
	"yuepai/internal/logger"
	"yuepai/internal/models"
	"yuepai/internal/postdetail"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostsPerPage 列表每页条数
const PostsPerPage = 30

type PostService struct {
	db       *gorm.DB
	catalogs CatalogSource
	mail     *MailService
	siteURL  string
}

func NewPostService(db *gorm.DB, catalogs CatalogSource, mail *MailService, siteURL string) *PostService {
	return &PostService{db: db, catalogs: catalogs, mail: mail, siteURL: siteURL}
}

// FilterScope 把筛选条件转为查询条件；按身份或性别筛选时关联发布者
func FilterScope(f filter.Filter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.Identity != "" || f.Gender != "" {
			tx = tx.Joins("JOIN users ON users.id = posts.owner_id")
		}
		if from, to, ok := f.RegionRange(); ok {
			tx = tx.Where("posts.required_region_code >= ? AND posts.required_region_code < ?", int(from), int(to))
		}
		if f.CostOption != "" {
			tx = tx.Where("posts.cost_option = ?", f.CostOption)
		}
		if f.Identity != "" {
			tx = tx.Where("users.identity = ?", f.Identity)
		}
		if f.Gender != "" {
			tx = tx.Where("users.gender = ?", f.Gender)
		}
		return tx
	}
}

// List 按筛选条件分页查询，最新发布的在前
func (s *PostService) List(ctx context.Context, f filter.Filter, page int) ([]models.Post, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Scopes(FilterScope(f)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计约拍失败: %w", err)
	}

	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Scopes(FilterScope(f)).
		Order("posts.created_at DESC").
		Limit(PostsPerPage).
		Offset((page - 1) * PostsPerPage).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询约拍失败: %w", err)
	}

	if err := s.fillRegionNames(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Recent 最近发布且未关闭的约拍，用于订阅源和站点地图
func (s *PostService) Recent(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Where("is_closed = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("查询最近约拍失败: %w", err)
	}
	if err := s.fillRegionNames(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) fillRegionNames(ctx context.Context, posts []models.Post) error {
	catalog, err := s.catalogs.Catalog(ctx)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].RequiredRegionName = catalog.RegionName(posts[i].RequiredRegionCode)
	}
	return nil
}

// Get 查询单条约拍及发布者
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("Owner").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("查询约拍失败: %w", err)
	}
	posts := []models.Post{post}
	if err := s.fillRegionNames(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// Detail 约拍详情快照
func (s *PostService) Detail(ctx context.Context, id uint) (postdetail.State, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return postdetail.State{}, err
	}
	return postdetail.FromPost(*post, post.RequiredRegionName), nil
}

// HasRequested 用户是否已应征
func (s *PostService) HasRequested(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Request{}).
		Where("post_id = ? AND applicant_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("查询应征记录失败: %w", err)
	}
	return count > 0, nil
}

// Submit 保存表单提交的约拍：ID 为 0 时新建，否则只更新可编辑字段
func (s *PostService) Submit(ctx context.Context, post models.Post) (models.Post, error) {
	tx := s.db.WithContext(ctx).Omit(clause.Associations)
	if post.ID == 0 {
		if err := tx.Create(&post).Error; err != nil {
			return models.Post{}, fmt.Errorf("发布约拍失败: %w", err)
		}
		logger.From(ctx).Info("post created", zap.Uint("post_id", post.ID), zap.Uint("owner_id", post.OwnerID))
		return post, nil
	}

	result := tx.Model(&models.Post{}).
		Where("id = ? AND owner_id = ?", post.ID, post.OwnerID).
		Updates(map[string]interface{}{
			"photo_urls":           post.PhotoURLs,
			"required_region_code": post.RequiredRegionCode,
			"cost_option":          post.CostOption,
			"cost":                 post.Cost,
			"content":              post.Content,
			"tags":                 post.Tags,
		})
	if result.Error != nil {
		return models.Post{}, fmt.Errorf("更新约拍失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.Post{}, ErrPostNotFound
	}
	return post, nil
}

// Close 发布者关闭约拍
func (s *PostService) Close(ctx context.Context, postID, actorID uint) (postdetail.State, error) {
	return s.Dispatch(ctx, postID, actorID, postdetail.ClosePost)
}

// AddRequest 用户应征约拍
func (s *PostService) AddRequest(ctx context.Context, postID, applicantID uint) (postdetail.State, error) {
	return s.Dispatch(ctx, postID, applicantID, postdetail.AddNewRequest)
}

// CheckAction 动作的权限与状态检查
func CheckAction(post models.Post, actorID uint, action postdetail.Action, requested bool) error {
	switch action.Type {
	case postdetail.ActionClosePost:
		if post.OwnerID != actorID {
			return ErrNotOwner
		}
	case postdetail.ActionAddNewRequest:
		if post.OwnerID == actorID {
			return ErrOwnRequest
		}
		if post.IsClosed {
			return ErrPostClosed
		}
		if requested {
			return ErrDuplicateRequest
		}
	}
	return nil
}

// Dispatch 在行锁内读取约拍、应用动作并持久化变化的字段
func (s *PostService) Dispatch(ctx context.Context, postID, actorID uint, action postdetail.Action) (postdetail.State, error) {
	catalog, err := s.catalogs.Catalog(ctx)
	if err != nil {
		return postdetail.State{}, err
	}

	var (
		post      models.Post
		actor     models.User
		prev      postdetail.State
		next      postdetail.State
		notifyIDs []uint
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		if err := tx.First(&post.Owner, post.OwnerID).Error; err != nil {
			return err
		}

		requested := false
		if action.Type == postdetail.ActionAddNewRequest {
			if err := tx.First(&actor, actorID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUserNotFound
				}
				return err
			}
			var count int64
			if err := tx.Model(&models.Request{}).Where("post_id = ? AND applicant_id = ?", postID, actorID).Count(&count).Error; err != nil {
				return err
			}
			requested = count > 0
		}
		if err := CheckAction(post, actorID, action, requested); err != nil {
			return err
		}

		prev = postdetail.FromPost(post, catalog.RegionName(post.RequiredRegionCode))
		next = postdetail.Reduce(prev, action)

		updates := map[string]interface{}{}
		if next.IsClosed != prev.IsClosed {
			updates["is_closed"] = next.IsClosed
		}
		if next.RequestNum != prev.RequestNum {
			updates["request_num"] = next.RequestNum
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Updates(updates).Error; err != nil {
			return err
		}

		switch action.Type {
		case postdetail.ActionAddNewRequest:
			if err := tx.Omit(clause.Associations).Create(&models.Request{PostID: postID, ApplicantID: actorID}).Error; err != nil {
				return err
			}
			return tx.Omit(clause.Associations).Create(&models.Notification{
				UserID:  post.OwnerID,
				ActorID: &actorID,
				PostID:  &post.ID,
				Type:    models.NotificationTypeNewRequest,
				Reason:  fmt.Sprintf("%s 应征了你的约拍", actor.UserName),
			}).Error
		case postdetail.ActionClosePost:
			if err := tx.Model(&models.Request{}).Where("post_id = ?", postID).Pluck("applicant_id", &notifyIDs).Error; err != nil {
				return err
			}
			for _, uid := range notifyIDs {
				if err := tx.Omit(clause.Associations).Create(&models.Notification{
					UserID:  uid,
					ActorID: &actorID,
					PostID:  &post.ID,
					Type:    models.NotificationTypePostClosed,
					Reason:  "你应征的约拍已关闭",
				}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return postdetail.State{}, err
		}
		return postdetail.State{}, fmt.Errorf("更新约拍状态失败: %w", err)
	}

	logger.From(ctx).Info("post action applied",
		zap.Uint("post_id", postID), zap.Uint("actor_id", actorID), zap.String("action", string(action.Type)),
		zap.Bool("is_closed", next.IsClosed), zap.Int("request_num", next.RequestNum))

	if action.Type == postdetail.ActionAddNewRequest && post.Owner.Email != "" && s.mail != nil {
		s.mail.SendNewRequestNotification(post.Owner.Email, actor.UserName, post.Content,
			fmt.Sprintf("%s/p/%d", s.siteURL, post.ID))
	}
	return next, nil
}

func isServiceError(err error) bool {
	for _, target := range []error{ErrPostNotFound, ErrNotOwner, ErrPostClosed, ErrOwnRequest, ErrDuplicateRequest, ErrUserNotFound} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
