package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"yuepai/internal/middleware"
	"yuepai/internal/models"
	"yuepai/internal/postedit"
	"yuepai/internal/region"
	"yuepai/internal/services"
	"yuepai/internal/utils"

	"github.com/gin-gonic/gin"
)

// EditHandler 发布/修改约拍表单。表单状态保存在草稿中，省市联动、标签、照片等局部修改通过 JSON 接口提交
type EditHandler struct {
	posts    PostStore
	catalogs CatalogProvider
	drafts   *postedit.Drafts
}

func NewEditHandler(posts PostStore, catalogs CatalogProvider, drafts *postedit.Drafts) *EditHandler {
	return &EditHandler{posts: posts, catalogs: catalogs, drafts: drafts}
}

// New 发布约拍 (GET /submit)
func (h *EditHandler) New(c *gin.Context) {
	user := middleware.CurrentUser(c)
	draft := h.drafts.Open(models.Post{OwnerID: user.ID}, "/")
	h.renderForm(c, http.StatusOK, draft, nil)
}

// Edit 修改约拍 (GET /p/:id/edit)
func (h *EditHandler) Edit(c *gin.Context) {
	user := middleware.CurrentUser(c)
	post, err := h.posts.Get(c.Request.Context(), utils.StringToUint(c.Param("id")))
	if err != nil {
		code, msg := errorMessage(c, err)
		RenderError(c, code, msg)
		return
	}
	if post.OwnerID != user.ID {
		RenderError(c, http.StatusForbidden, services.ErrNotOwner.Error())
		return
	}
	draft := h.drafts.Open(*post, fmt.Sprintf("/p/%d", post.ID))
	h.renderForm(c, http.StatusOK, draft, nil)
}

func (h *EditHandler) renderForm(c *gin.Context, code int, draft *postedit.Draft, errs []string) {
	catalog, err := h.catalogs.Catalog(c.Request.Context())
	if err != nil {
		code, msg := errorMessage(c, err)
		RenderError(c, code, msg)
		return
	}
	title := "发布约拍"
	if draft.Original.ID != 0 {
		title = "修改约拍"
	}
	Render(c, code, "post/edit.html", gin.H{
		"Title":           title,
		"Draft":           draft,
		"Fields":          draft.Copy.Fields(),
		"Provinces":       catalog.Provinces,
		"SubRegions":      draft.Copy.RegionOptions(catalog.Regions),
		"CostOptions":     catalog.CostOptions,
		"Tags":            catalog.Tags,
		"ShouldInputCost": draft.Copy.ShouldInputCost(),
		"MaxPhotos":       postedit.MaxPhotos,
		"MaxContentLen":   postedit.MaxContentLen,
		"Errors":          errs,
	})
}

// draft 取出当前用户的草稿；不存在、已过期或不属于当前用户时视为不存在
func (h *EditHandler) draft(c *gin.Context) (*postedit.Draft, bool) {
	user := middleware.CurrentUser(c)
	draft, ok := h.drafts.Get(c.Param("draft"))
	if !ok || draft.Original.OwnerID != user.ID {
		return nil, false
	}
	return draft, true
}

// failDraft 草稿类接口的错误响应
func failDraft(c *gin.Context, err error) {
	switch {
	case errors.Is(err, postedit.ErrHandedOff):
		Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, postedit.ErrClosed):
		Fail(c, http.StatusGone, err.Error())
	default:
		code, msg := errorMessage(c, err)
		Fail(c, code, msg)
	}
}

func draftNotFound(c *gin.Context) {
	Fail(c, http.StatusNotFound, "表单已过期，请重新进入")
}

type codeForm struct {
	Code int `form:"code" json:"code" binding:"min=0" label:"地区"`
}

// Province 选择省份，返回该省下的地区和下拉框选项 (POST /drafts/:draft/province)
func (h *EditHandler) Province(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		draftNotFound(c)
		return
	}
	var form codeForm
	if err := c.ShouldBind(&form); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := draft.Copy.SelectProvince(region.Code(form.Code)); err != nil {
		failDraft(c, err)
		return
	}
	catalog, err := h.catalogs.Catalog(c.Request.Context())
	if err != nil {
		failDraft(c, err)
		return
	}
	fields := draft.Copy.Fields()
	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"selectedProvinceCode": fields.SelectedProvinceCode,
		"requiredRegionCode":   fields.RequiredRegionCode,
		"subRegions":           nonNilRegions(draft.Copy.SubRegions(catalog.Regions)),
		"regionOptions":        nonNilRegions(draft.Copy.RegionOptions(catalog.Regions)),
	})
}

func nonNilRegions(r []region.Region) []region.Region {
	if r == nil {
		return []region.Region{}
	}
	return r
}

// Region 选择面向地区 (POST /drafts/:draft/region)
func (h *EditHandler) Region(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		draftNotFound(c)
		return
	}
	var form codeForm
	if err := c.ShouldBind(&form); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := draft.Copy.SelectRegion(region.Code(form.Code)); err != nil {
		failDraft(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "requiredRegionCode": draft.Copy.Fields().RequiredRegionCode})
}

type tagForm struct {
	Tag string `form:"tag" json:"tag" binding:"required" label:"标签"`
}

// ToggleTag 选中/取消标签 (POST /drafts/:draft/tags/toggle)
func (h *EditHandler) ToggleTag(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		draftNotFound(c)
		return
	}
	var form tagForm
	if err := c.ShouldBind(&form); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	tags, err := draft.Copy.ToggleTag(form.Tag)
	if err != nil {
		failDraft(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tags": tags})
}

type photosForm struct {
	PhotoURLs []string `form:"photo_urls" json:"photoUrls"`
}

// Photos 替换照片列表 (POST /drafts/:draft/photos)
func (h *EditHandler) Photos(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		draftNotFound(c)
		return
	}
	var form photosForm
	if err := c.ShouldBind(&form); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := draft.Copy.SetPhotoURLs(form.PhotoURLs); err != nil {
		failDraft(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "photoUrls": draft.Copy.Fields().PhotoURLs})
}

// submitForm 表单中直接提交的字段；缺省的字段保持草稿中的值
type submitForm struct {
	ProvinceCode *int     `form:"province_code"`
	RegionCode   *int     `form:"region_code"`
	CostOption   *string  `form:"cost_option"`
	Cost         *int     `form:"cost"`
	Content      *string  `form:"content"`
	Tags         []string `form:"tags"`
	PhotoURLs    []string `form:"photo_urls"`
}

func (f submitForm) apply(w *postedit.WorkingCopy) error {
	var errs []error
	if f.ProvinceCode != nil {
		errs = append(errs, w.SelectProvince(region.Code(*f.ProvinceCode)))
	}
	// 0 是下拉框的占位项，不清空已选地区
	if f.RegionCode != nil && *f.RegionCode != 0 {
		errs = append(errs, w.SelectRegion(region.Code(*f.RegionCode)))
	}
	if f.CostOption != nil {
		errs = append(errs, w.SetCostOption(*f.CostOption))
	}
	if f.Cost != nil {
		errs = append(errs, w.SetCost(*f.Cost))
	}
	if f.Content != nil {
		errs = append(errs, w.SetContent(*f.Content))
	}
	if f.Tags != nil {
		errs = append(errs, w.SetTags(f.Tags))
	}
	if f.PhotoURLs != nil {
		errs = append(errs, w.SetPhotoURLs(f.PhotoURLs))
	}
	return errors.Join(errs...)
}

// Submit 校验并保存，成功后返回进入表单前的页面 (POST /drafts/:draft/submit)
func (h *EditHandler) Submit(c *gin.Context) {
	draft, ok := h.draft(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "表单已过期，请重新进入")
		return
	}
	var form submitForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusBadRequest, draft, []string{"表单格式不正确"})
		return
	}
	if err := form.apply(draft.Copy); err != nil {
		if errors.Is(err, postedit.ErrHandedOff) {
			h.renderForm(c, http.StatusConflict, draft, []string{postedit.ErrHandedOff.Error()})
			return
		}
		RenderError(c, http.StatusGone, err.Error())
		return
	}
	catalog, err := h.catalogs.Catalog(c.Request.Context())
	if err != nil {
		code, msg := errorMessage(c, err)
		RenderError(c, code, msg)
		return
	}
	var ve *postedit.ValidationError
	if err := draft.Copy.CheckRegion(catalog.Regions); errors.As(err, &ve) {
		h.renderForm(c, http.StatusUnprocessableEntity, draft, ve.Messages)
		return
	}

	_, err = draft.Copy.Submit(c.Request.Context(), draft.Original, h.posts)
	if err != nil {
		switch {
		case errors.As(err, &ve):
			h.renderForm(c, http.StatusUnprocessableEntity, draft, ve.Messages)
		case errors.Is(err, postedit.ErrHandedOff):
			h.renderForm(c, http.StatusConflict, draft, []string{err.Error()})
		case errors.Is(err, postedit.ErrClosed):
			RenderError(c, http.StatusGone, err.Error())
		default:
			code, msg := errorMessage(c, err)
			h.renderForm(c, code, draft, []string{msg})
		}
		return
	}

	h.drafts.Discard(draft.ID)
	c.Redirect(http.StatusFound, draft.Back)
}

// Cancel 放弃修改并返回 (POST /drafts/:draft/cancel)
func (h *EditHandler) Cancel(c *gin.Context) {
	back := "/"
	if draft, ok := h.draft(c); ok {
		back = draft.Back
		h.drafts.Discard(draft.ID)
	}
	c.Redirect(http.StatusFound, back)
}
