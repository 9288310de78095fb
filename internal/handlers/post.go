package handlers

import (
	"fmt"
	"net/http"
	"yuepai/internal/filter"
	"yuepai/internal/middleware"
	"yuepai/internal/services"
	"yuepai/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts    PostStore
	catalogs CatalogProvider
}

func NewPostHandler(posts PostStore, catalogs CatalogProvider) *PostHandler {
	return &PostHandler{posts: posts, catalogs: catalogs}
}

// List 首页：按会话中的筛选条件列出约拍 (GET /)
func (h *PostHandler) List(c *gin.Context) {
	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	f := CurrentFilter(c)
	posts, total, err := h.posts.List(c.Request.Context(), f, page)
	if err != nil {
		code, msg := errorMessage(c, err)
		RenderError(c, code, msg)
		return
	}
	catalog, err := h.catalogs.Catalog(c.Request.Context())
	if err != nil {
		code, msg := errorMessage(c, err)
		RenderError(c, code, msg)
		return
	}

	totalPages := int((total + services.PostsPerPage - 1) / services.PostsPerPage)
	Render(c, http.StatusOK, "post/list.html", gin.H{
		"Title":      "约拍",
		"Posts":      posts,
		"FilterView": filter.Project(catalog.ForFilter(), f),
		"Page":       page,
		"TotalPages": totalPages,
		"HasPrev":    page > 1,
		"HasNext":    page < totalPages,
	})
}

// Detail 约拍详情 (GET /p/:id)
func (h *PostHandler) Detail(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	state, err := h.posts.Detail(c.Request.Context(), id)
	if err != nil {
		code, msg := errorMessage(c, err)
		RenderError(c, code, msg)
		return
	}

	isOwner, requested := false, false
	if user := middleware.CurrentUser(c); user != nil {
		isOwner = user.ID == state.OwnerID
		if !isOwner {
			requested, err = h.posts.HasRequested(c.Request.Context(), id, user.ID)
			if err != nil {
				code, msg := errorMessage(c, err)
				RenderError(c, code, msg)
				return
			}
		}
	}

	Render(c, http.StatusOK, "post/detail.html", gin.H{
		"Title":     state.OwnerName + " 的约拍",
		"Post":      state,
		"Content":   utils.RenderContent(state.Content),
		"IsOwner":   isOwner,
		"Requested": requested,
		"CanApply":  !isOwner && !requested && !state.IsClosed,
	})
}

// Close 发布者关闭约拍 (POST /p/:id/close)
func (h *PostHandler) Close(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))
	if _, err := h.posts.Close(c.Request.Context(), id, user.ID); err != nil {
		code, msg := errorMessage(c, err)
		RenderError(c, code, msg)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/p/%d", id))
}

// Request 应征约拍 (POST /p/:id/request)
func (h *PostHandler) Request(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))
	if _, err := h.posts.AddRequest(c.Request.Context(), id, user.ID); err != nil {
		code, msg := errorMessage(c, err)
		RenderError(c, code, msg)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/p/%d", id))
}
