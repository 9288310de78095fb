package db

import (
	"yuepai/internal/models"
)

// DefaultRegions 预设地区：省级编码以 0000 结尾
func DefaultRegions() []models.Region {
	return []models.Region{
		{RegionCode: 110000, RegionName: "北京市"},
		{RegionCode: 110101, RegionName: "东城区"},
		{RegionCode: 110105, RegionName: "朝阳区"},
		{RegionCode: 310000, RegionName: "上海市"},
		{RegionCode: 310101, RegionName: "黄浦区"},
		{RegionCode: 310104, RegionName: "徐汇区"},
		{RegionCode: 330000, RegionName: "浙江省"},
		{RegionCode: 330100, RegionName: "杭州市"},
		{RegionCode: 330106, RegionName: "西湖区"},
		{RegionCode: 330200, RegionName: "宁波市"},
		{RegionCode: 440000, RegionName: "广东省"},
		{RegionCode: 440100, RegionName: "广州市"},
		{RegionCode: 440300, RegionName: "深圳市"},
		{RegionCode: 510000, RegionName: "四川省"},
		{RegionCode: 510100, RegionName: "成都市"},
	}
}

// DefaultOptions 预设费用选项、身份、性别和拍摄标签，Sort 保持声明顺序
func DefaultOptions() []models.CatalogOption {
	groups := []struct {
		kind   models.OptionKind
		labels []string
	}{
		{models.OptionKindCost, []string{"互免", "需要收费", "愿意付费", "费用面议"}},
		{models.OptionKindIdentity, []string{"摄影师", "模特", "化妆师", "后期"}},
		{models.OptionKindGender, []string{"男", "女"}},
		{models.OptionKindTag, []string{"人像", "古风", "JK", "街拍", "婚纱", "情侣", "写真", "汉服"}},
	}

	var options []models.CatalogOption
	for _, g := range groups {
		for i, label := range g.labels {
			options = append(options, models.CatalogOption{Kind: g.kind, Label: label, Sort: i})
		}
	}
	return options
}
