package router

import (
	"yuepai/internal/handlers"
	"yuepai/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers 路由用到的全部 handler
type Handlers struct {
	Filter       *handlers.FilterHandler
	Post         *handlers.PostHandler
	Edit         *handlers.EditHandler
	User         *handlers.UserHandler
	Notification *handlers.NotificationHandler
	Image        *handlers.ImageHandler
	SEO          *handlers.SEOHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	// 公共路由 (Public Routes)
	r.GET("/", h.Post.List)        // 首页 - 约拍列表
	r.GET("/p/:id", h.Post.Detail) // 约拍详情

	r.GET("/users/new", h.User.New) // 创建资料页面
	r.POST("/users", h.User.Create) // 提交创建资料
	r.POST("/logout", h.User.Logout)

	// SEO
	r.GET("/robots.txt", h.SEO.RobotsTxt)
	r.GET("/sitemap.xml", h.SEO.SitemapXML)
	r.GET("/feed.xml", h.SEO.RSSFeed)

	// 筛选与联动接口
	api := r.Group("/api")
	{
		api.GET("/filter", h.Filter.Show)                     // 筛选栏数据
		api.POST("/filter", h.Filter.Select)                  // 选择筛选项
		api.POST("/filter/extra", h.Filter.Extra)             // 高级筛选（预留）
		api.POST("/filter/reset", h.Filter.Reset)             // 重置筛选
		api.GET("/regions/:code/children", h.Filter.Children) // 省份下的地区
		api.GET("/users/name/check", h.User.CheckName)        // 昵称是否可用
		api.GET("/users/:id", h.User.Brief)                   // 用户简要信息

		api.POST("/upload", middleware.ProfileRequired(), h.Image.Upload) // 上传照片
	}

	// 需要用户资料的路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.ProfileRequired())
	{
		authorized.GET("/submit", h.Edit.New)             // 发布约拍
		authorized.GET("/p/:id/edit", h.Edit.Edit)        // 修改约拍
		authorized.POST("/p/:id/close", h.Post.Close)     // 关闭约拍
		authorized.POST("/p/:id/request", h.Post.Request) // 应征约拍

		authorized.POST("/drafts/:draft/province", h.Edit.Province)     // 选择省份
		authorized.POST("/drafts/:draft/region", h.Edit.Region)         // 选择地区
		authorized.POST("/drafts/:draft/tags/toggle", h.Edit.ToggleTag) // 切换标签
		authorized.POST("/drafts/:draft/photos", h.Edit.Photos)         // 更新照片
		authorized.POST("/drafts/:draft/submit", h.Edit.Submit)         // 提交表单
		authorized.POST("/drafts/:draft/cancel", h.Edit.Cancel)         // 放弃修改

		authorized.GET("/notifications", h.Notification.List)           // 我的通知
		authorized.POST("/notifications/:id/read", h.Notification.Read) // 标记已读
	}
}
