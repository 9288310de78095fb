package region

import (
	"strconv"
	"strings"
)

// AllName 地区筛选中"全部"哨兵项的显示名
const AllName = "全部"

// provinceSpan 省级编码的步长：前两位为省份，后四位为下级地区
const provinceSpan = 10000

// Code 行政区划编码，省级单位以 "0000" 结尾，例如 330000 浙江省、330106 西湖区
type Code int

// Region 地区目录中的一项
type Region struct {
	Code Code   `json:"regionCode"`
	Name string `json:"regionName"`
}

// All 返回"全部地区"哨兵项（编码为 0）
func All() Region {
	return Region{Code: 0, Name: AllName}
}

// IsProvince 编码的十进制字符串以 "0000" 结尾即为省级单位
func IsProvince(code Code) bool {
	return strings.HasSuffix(strconv.Itoa(int(code)), "0000")
}

// ProvinceOf 返回编码所属的省级单位编码，0 映射为 0
func ProvinceOf(code Code) Code {
	return code / provinceSpan * provinceSpan
}

// SameProvince 两个编码前两位相同时属于同一省份
func SameProvince(a, b Code) bool {
	return a/provinceSpan == b/provinceSpan
}

// SubRegionsOf 返回目录中与 province 前两位相同的全部地区，保持目录顺序。
// 目录中的省级项本身也会被包含；province 为 0（未选择省份）时返回空。
// 不足六位的编码没有省份前缀，不会匹配任何真实省份。
func SubRegionsOf(all []Region, province Code) []Region {
	if province == 0 {
		return nil
	}
	var subRegions []Region
	for _, r := range all {
		if SameProvince(r.Code, province) {
			subRegions = append(subRegions, r)
		}
	}
	return subRegions
}

// Provinces 过滤出目录中的省级单位
func Provinces(all []Region) []Region {
	provinces := make([]Region, 0, len(all))
	for _, r := range all {
		if IsProvince(r.Code) {
			provinces = append(provinces, r)
		}
	}
	return provinces
}

// Lookup 按编码精确查找地区
func Lookup(all []Region, code Code) (Region, bool) {
	for _, r := range all {
		if r.Code == code {
			return r, true
		}
	}
	return Region{}, false
}

// NameOf 返回编码对应的地区名，找不到时返回空串
func NameOf(all []Region, code Code) string {
	if r, ok := Lookup(all, code); ok {
		return r.Name
	}
	return ""
}
