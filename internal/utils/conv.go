package utils

import (
	"strconv"
	"yuepai/internal/region"
)

// StringToInt converts string to int, returns 0 if error
func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

// StringToUint 路径参数中的 ID，非法时返回 0
func StringToUint(s string) uint {
	i, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(i)
}

// ParseRegionCode 解析地区编码，空串或非法值视为"全部"(0)
func ParseRegionCode(s string) region.Code {
	i := StringToInt(s)
	if i < 0 {
		return 0
	}
	return region.Code(i)
}
