package models

import (
	"yuepai/internal/region"
)

// Region 行政区划目录
type Region struct {
	RegionCode region.Code `gorm:"primaryKey;autoIncrement:false" json:"regionCode"`
	RegionName string      `gorm:"size:50;not null" json:"regionName"`
}

func (r Region) ToRegion() region.Region {
	return region.Region{Code: r.RegionCode, Name: r.RegionName}
}
