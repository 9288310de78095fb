package handlers

import (
	"net/http"
	"yuepai/internal/filter"
	"yuepai/internal/region"
	"yuepai/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// FilterHandler 约拍列表的筛选栏
type FilterHandler struct {
	catalogs CatalogProvider
}

func NewFilterHandler(catalogs CatalogProvider) *FilterHandler {
	return &FilterHandler{catalogs: catalogs}
}

// sessionFilter 以会话中保存的条件为初始值，派发后写回会话
type sessionFilter struct {
	session sessions.Session
	store   *filter.Store
}

func loadFilter(c *gin.Context) *sessionFilter {
	session := sessions.Default(c)
	return &sessionFilter{
		session: session,
		store:   filter.NewStore(filter.Load(session.Get)),
	}
}

func (s *sessionFilter) Dispatch(a filter.Action) filter.Filter {
	f := s.store.Dispatch(a)
	f.Save(s.session.Set)
	return f
}

func (s *sessionFilter) save() error {
	return s.session.Save()
}

// CurrentFilter 当前会话的筛选条件
func CurrentFilter(c *gin.Context) filter.Filter {
	return filter.Load(sessions.Default(c).Get)
}

// Show 筛选栏数据 (GET /api/filter)
func (h *FilterHandler) Show(c *gin.Context) {
	h.respond(c, CurrentFilter(c))
}

type selectForm struct {
	Field string `form:"field" json:"field" binding:"required,oneof=region_code cost_option identity gender" label:"筛选项"`
	Value string `form:"value" json:"value" label:"筛选值"`
}

// Select 选择一个筛选项，每次只修改一个字段 (POST /api/filter)
func (h *FilterHandler) Select(c *gin.Context) {
	var form selectForm
	if err := c.ShouldBind(&form); err != nil {
		Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	sf := loadFilter(c)
	selector := filter.NewSelector(sf)
	var f filter.Filter
	switch form.Field {
	case "region_code":
		f = selector.SelectRegion(utils.ParseRegionCode(form.Value))
	case "cost_option":
		f = selector.SelectCostOption(form.Value)
	case "identity":
		f = selector.SelectIdentity(form.Value)
	case "gender":
		f = selector.SelectGender(form.Value)
	}
	if err := sf.save(); err != nil {
		Fail(c, http.StatusInternalServerError, "保存筛选条件失败")
		return
	}
	h.respond(c, f)
}

// Extra 高级筛选入口，暂未开放 (POST /api/filter/extra)
func (h *FilterHandler) Extra(c *gin.Context) {
	filter.NewSelector(loadFilter(c)).Extra()
	c.Status(http.StatusNoContent)
}

// Reset 清空筛选条件 (POST /api/filter/reset)
func (h *FilterHandler) Reset(c *gin.Context) {
	sf := loadFilter(c)
	f := sf.Dispatch(filter.ResetFilter())
	if err := sf.save(); err != nil {
		Fail(c, http.StatusInternalServerError, "保存筛选条件失败")
		return
	}
	h.respond(c, f)
}

func (h *FilterHandler) respond(c *gin.Context, f filter.Filter) {
	catalog, err := h.catalogs.Catalog(c.Request.Context())
	if err != nil {
		code, msg := errorMessage(c, err)
		Fail(c, code, msg)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    filter.Project(catalog.ForFilter(), f),
	})
}

// Children 省份下的地区，用于省市联动 (GET /api/regions/:code/children)
func (h *FilterHandler) Children(c *gin.Context) {
	catalog, err := h.catalogs.Catalog(c.Request.Context())
	if err != nil {
		code, msg := errorMessage(c, err)
		Fail(c, code, msg)
		return
	}
	children := region.SubRegionsOf(catalog.Regions, utils.ParseRegionCode(c.Param("code")))
	if children == nil {
		children = []region.Region{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": children})
}
