package middleware

import (
	"context"
	"net/http"
	"net/url"
	"yuepai/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"
const UnreadCountKey = "unread_count"

// SessionUserKey 会话中保存当前用户 ID 的键
const SessionUserKey = "user_id"

// UserSource 按 ID 查询用户资料
type UserSource interface {
	Get(ctx context.Context, id uint) (*models.User, error)
}

// UnreadCounter 未读通知数
type UnreadCounter interface {
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

// LoadUser 从会话取出用户并写入上下文；用户已不存在时清除会话
func LoadUser(users UserSource, unread UnreadCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(SessionUserKey).(uint)

		if ok {
			user, err := users.Get(c.Request.Context(), userID)
			if err == nil {
				c.Set(CheckUserKey, user)

				if count, err := unread.UnreadCount(c.Request.Context(), user.ID); err == nil {
					c.Set(UnreadCountKey, count)
				}
			} else {
				session.Delete(SessionUserKey)
				_ = session.Save()
			}
		}
		c.Next()
	}
}

// ProfileRequired 需要先创建用户资料；页面请求跳转到创建页，接口请求返回 401
func ProfileRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			if c.Request.Method == http.MethodGet {
				c.Redirect(http.StatusFound, "/users/new?back="+url.QueryEscape(c.Request.URL.RequestURI()))
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "请先创建用户资料"})
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser 当前用户，未创建资料时为 nil
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(CheckUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
