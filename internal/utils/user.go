package utils

import (
	"fmt"
	"time"
)

// 身份对应的默认头像
var identityAvatars = map[string]string{
	"摄影师": "📷",
	"模特":  "💃",
	"化妆师": "💄",
	"后期":  "🎨",
}

// DefaultAvatar 按身份返回默认头像，未知身份用相机
func DefaultAvatar(identity string) string {
	if a, ok := identityAvatars[identity]; ok {
		return a
	}
	return "📷"
}

// GetCommonEmojis 返回常用 emoji 列表供用户选择头像
func GetCommonEmojis() []string {
	return []string{
		"📷", "📸", "🎞️", "🎬", "💃", "🕺", "💄", "🎨",
		"🌸", "🌿", "🍃", "🌙", "⭐", "✨", "🔥", "💎",
		"🐼", "🦊", "🐱", "🐶", "😀", "😊", "😎", "🤓",
	}
}

// TimeAgo 相对时间
func TimeAgo(t time.Time) string {
	seconds := int(time.Since(t).Seconds())
	switch {
	case seconds < 60:
		return "刚刚"
	case seconds < 3600:
		return fmt.Sprintf("%d分钟前", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%d小时前", seconds/3600)
	case seconds < 2592000:
		return fmt.Sprintf("%d天前", seconds/86400)
	case seconds < 31536000:
		return fmt.Sprintf("%d个月前", seconds/2592000)
	}
	return fmt.Sprintf("%d年前", seconds/31536000)
}
