package handlers

import (
	"errors"
	"net/http"
	"strings"
	"yuepai/internal/middleware"
	"yuepai/internal/models"
	"yuepai/internal/services"
	"yuepai/internal/utils"
	"yuepai/internal/validator"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users    UserStore
	catalogs CatalogProvider
}

func NewUserHandler(users UserStore, catalogs CatalogProvider) *UserHandler {
	return &UserHandler{users: users, catalogs: catalogs}
}

type userForm struct {
	UserName string `form:"user_name" binding:"required,max=30,nocontrol" label:"昵称"`
	Identity string `form:"identity" binding:"required" label:"身份"`
	Gender   string `form:"gender" binding:"required" label:"性别"`
	Avatar   string `form:"avatar" binding:"max=255" label:"头像"`
	Email    string `form:"email" binding:"omitempty,email" label:"邮箱"`
}

// safeBack 只允许跳转到站内地址
func safeBack(back string) string {
	if !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") {
		return "/"
	}
	return back
}

// New 创建用户资料页 (GET /users/new)
func (h *UserHandler) New(c *gin.Context) {
	h.renderNew(c, http.StatusOK, userForm{}, nil)
}

func (h *UserHandler) renderNew(c *gin.Context, code int, form userForm, errs []string) {
	catalog, err := h.catalogs.Catalog(c.Request.Context())
	if err != nil {
		code, msg := errorMessage(c, err)
		RenderError(c, code, msg)
		return
	}
	Render(c, code, "user/new.html", gin.H{
		"Title":      "创建资料",
		"Form":       form,
		"Identities": catalog.Identities,
		"Genders":    catalog.Genders,
		"Emojis":     utils.GetCommonEmojis(),
		"Back":       safeBack(c.Query("back")),
		"Errors":     errs,
	})
}

// Create 创建用户资料并写入会话 (POST /users)
func (h *UserHandler) Create(c *gin.Context) {
	var form userForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderNew(c, http.StatusUnprocessableEntity, form, validator.Messages(err))
		return
	}

	user := &models.User{
		UserName: form.UserName,
		Identity: form.Identity,
		Gender:   form.Gender,
		Avatar:   form.Avatar,
		Email:    form.Email,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, services.ErrUserNameUsed) {
			h.renderNew(c, http.StatusConflict, form, []string{err.Error()})
			return
		}
		code, msg := errorMessage(c, err)
		h.renderNew(c, code, form, []string{msg})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		RenderError(c, http.StatusInternalServerError, "保存登录状态失败")
		return
	}
	c.Redirect(http.StatusFound, safeBack(c.Query("back")))
}

// CheckName 昵称是否已被使用 (GET /api/users/name/check?name=)
func (h *UserHandler) CheckName(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		Fail(c, http.StatusBadRequest, "昵称不能为空")
		return
	}
	used, err := h.users.IsNameUsed(c.Request.Context(), name)
	if err != nil {
		code, msg := errorMessage(c, err)
		Fail(c, code, msg)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "isUsed": used})
}

// Brief 用户简要信息 (GET /api/users/:id)
func (h *UserHandler) Brief(c *gin.Context) {
	brief, err := h.users.Brief(c.Request.Context(), utils.StringToUint(c.Param("id")))
	if err != nil {
		code, msg := errorMessage(c, err)
		Fail(c, code, msg)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": brief})
}

// Logout 解除会话与用户资料的绑定，筛选条件保留 (POST /logout)
func (h *UserHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.SessionUserKey)
	_ = session.Save()
	c.Redirect(http.StatusFound, "/")
}
