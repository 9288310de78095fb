package models

// OptionKind 目录选项类别
type OptionKind string

const (
	OptionKindCost     OptionKind = "cost_option"
	OptionKindIdentity OptionKind = "identity"
	OptionKindGender   OptionKind = "gender"
	OptionKindTag      OptionKind = "tag"
)

// CatalogOption 费用选项、身份、性别、拍摄标签等目录
type CatalogOption struct {
	ID    uint       `gorm:"primaryKey" json:"id"`
	Kind  OptionKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_kind_label" json:"kind"`
	Label string     `gorm:"size:20;not null;uniqueIndex:idx_kind_label" json:"label"`
	Sort  int        `gorm:"default:0" json:"sort"`
}
