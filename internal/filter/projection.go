package filter

import (
	"yuepai/internal/region"
)

// BuildDisplayRegions 生成地区筛选列表：全部 + 各省份。
// 若当前条件选中的是非省级地区，则在末尾追加该地区，保证已选项可见；
// 目录中找不到时直接忽略。
func BuildDisplayRegions(provinces, all []region.Region, f Filter) []region.Region {
	displayRegions := make([]region.Region, 0, len(provinces)+2)
	displayRegions = append(displayRegions, region.All())
	displayRegions = append(displayRegions, provinces...)

	if f.RegionCode != 0 && !region.IsProvince(f.RegionCode) {
		if selected, ok := region.Lookup(all, f.RegionCode); ok {
			displayRegions = append(displayRegions, selected)
		}
	}
	return displayRegions
}

// BuildOptionList 在选项目录前加上"全部"
func BuildOptionList(options []string) []string {
	list := make([]string, 0, len(options)+1)
	list = append(list, AllLabel)
	return append(list, options...)
}

// View 筛选栏需要的全部展示数据
type View struct {
	DisplayRegions []region.Region `json:"displayRegions"`
	CostOptions    []string        `json:"costOptions"`
	Identities     []string        `json:"identities"`
	Genders        []string        `json:"genders"`
	Filter         Filter          `json:"filter"`
}

// Catalogs 构建筛选栏所需的全局目录
type Catalogs struct {
	Regions     []region.Region
	Provinces   []region.Region
	CostOptions []string
	Identities  []string
	Genders     []string
}

// Project 由目录和当前条件推导筛选栏展示数据
func Project(c Catalogs, f Filter) View {
	return View{
		DisplayRegions: BuildDisplayRegions(c.Provinces, c.Regions, f),
		CostOptions:    BuildOptionList(c.CostOptions),
		Identities:     BuildOptionList(c.Identities),
		Genders:        BuildOptionList(c.Genders),
		Filter:         f,
	}
}

// Selector 把用户的选择转换为筛选动作，每次选择只派发一个动作
type Selector struct {
	d Dispatcher
}

func NewSelector(d Dispatcher) Selector {
	return Selector{d: d}
}

func (s Selector) SelectRegion(code region.Code) Filter {
	return s.d.Dispatch(SetFilter(Partial{RegionCode: &code}))
}

func (s Selector) SelectCostOption(label string) Filter {
	v := normalize(label)
	return s.d.Dispatch(SetFilter(Partial{CostOption: &v}))
}

func (s Selector) SelectIdentity(label string) Filter {
	v := normalize(label)
	return s.d.Dispatch(SetFilter(Partial{Identity: &v}))
}

func (s Selector) SelectGender(label string) Filter {
	v := normalize(label)
	return s.d.Dispatch(SetFilter(Partial{Gender: &v}))
}

// Extra 高级筛选的预留入口，目前不做任何事
func (s Selector) Extra() {}

func normalize(label string) string {
	if label == AllLabel {
		return ""
	}
	return label
}
