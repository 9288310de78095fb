// Package filter 约拍列表的筛选条件：地区、费用、身份、性别。
//
// 筛选条件只能通过 Store.Dispatch 修改；展示用的地区和选项列表由
// BuildDisplayRegions、BuildOptionList 从全局目录和当前条件推导。
package filter

import (
	"yuepai/internal/region"
)

// AllLabel 选项列表前置的"全部"哨兵，选中它表示不过滤该字段
const AllLabel = "全部"

// Filter 当前筛选条件，零值表示不过滤
type Filter struct {
	RegionCode region.Code `json:"regionCode"`
	CostOption string      `json:"costOption"`
	Identity   string      `json:"identity"`
	Gender     string      `json:"gender"`
}

// Partial 筛选条件的局部更新，nil 字段保持不变
type Partial struct {
	RegionCode *region.Code `json:"regionCode,omitempty"`
	CostOption *string      `json:"costOption,omitempty"`
	Identity   *string      `json:"identity,omitempty"`
	Gender     *string      `json:"gender,omitempty"`
}

// Merge 将局部更新合并到筛选条件上，返回新值
func (f Filter) Merge(p Partial) Filter {
	if p.RegionCode != nil {
		f.RegionCode = *p.RegionCode
	}
	if p.CostOption != nil {
		f.CostOption = *p.CostOption
	}
	if p.Identity != nil {
		f.Identity = *p.Identity
	}
	if p.Gender != nil {
		f.Gender = *p.Gender
	}
	return f
}

// IsZero 是否未设置任何条件
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// RegionRange 将地区条件转为编码区间 [from, to)。
// 未选地区时 ok 为 false；省级编码覆盖整个省份；其余编码精确匹配。
func (f Filter) RegionRange() (from, to region.Code, ok bool) {
	if f.RegionCode == 0 {
		return 0, 0, false
	}
	if region.IsProvince(f.RegionCode) {
		p := region.ProvinceOf(f.RegionCode)
		return p, p + 10000, true
	}
	return f.RegionCode, f.RegionCode + 1, true
}

// 会话中保存筛选条件使用的键
const (
	sessionRegionCode = "filter_region_code"
	sessionCostOption = "filter_cost_option"
	sessionIdentity   = "filter_identity"
	sessionGender     = "filter_gender"
)

// Load 从会话取值函数中恢复筛选条件，缺失或类型不符的键按零值处理
func Load(get func(key interface{}) interface{}) Filter {
	var f Filter
	if v, ok := get(sessionRegionCode).(int); ok {
		f.RegionCode = region.Code(v)
	}
	if v, ok := get(sessionCostOption).(string); ok {
		f.CostOption = v
	}
	if v, ok := get(sessionIdentity).(string); ok {
		f.Identity = v
	}
	if v, ok := get(sessionGender).(string); ok {
		f.Gender = v
	}
	return f
}

// Save 把筛选条件写入会话
func (f Filter) Save(set func(key interface{}, val interface{})) {
	set(sessionRegionCode, int(f.RegionCode))
	set(sessionCostOption, f.CostOption)
	set(sessionIdentity, f.Identity)
	set(sessionGender, f.Gender)
}
