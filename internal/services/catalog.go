package services

import (
	"context"
	"fmt"
	"time"
	"yuepai/internal/filter"
	"yuepai/internal/models"
	"yuepai/internal/region"
	"yuepai/internal/utils"

	"gorm.io/gorm"
)

const (
	catalogCacheKey = "catalog"
	catalogCacheTTL = 10 * time.Minute
)

// Catalog 全局目录：地区、费用选项、身份、性别、拍摄标签
type Catalog struct {
	Regions     []region.Region
	Provinces   []region.Region
	CostOptions []string
	Identities  []string
	Genders     []string
	Tags        []string
}

// ForFilter 筛选栏所需的目录
func (c Catalog) ForFilter() filter.Catalogs {
	return filter.Catalogs{
		Regions:     c.Regions,
		Provinces:   c.Provinces,
		CostOptions: c.CostOptions,
		Identities:  c.Identities,
		Genders:     c.Genders,
	}
}

// RegionName 地区名称，找不到时为空
func (c Catalog) RegionName(code region.Code) string {
	return region.NameOf(c.Regions, code)
}

// CatalogSource 提供全局目录
type CatalogSource interface {
	Catalog(ctx context.Context) (Catalog, error)
}

type CatalogService struct {
	db    *gorm.DB
	cache *utils.GlobalCache
}

func NewCatalogService(db *gorm.DB, cache *utils.GlobalCache) *CatalogService {
	return &CatalogService{db: db, cache: cache}
}

// Catalog 优先读缓存，未命中时从数据库加载
func (s *CatalogService) Catalog(ctx context.Context) (Catalog, error) {
	if cached, ok := s.cache.Get(catalogCacheKey).(Catalog); ok {
		return cached, nil
	}

	var rows []models.Region
	if err := s.db.WithContext(ctx).Order("region_code").Find(&rows).Error; err != nil {
		return Catalog{}, fmt.Errorf("加载地区目录失败: %w", err)
	}
	var options []models.CatalogOption
	if err := s.db.WithContext(ctx).Order("kind, sort, id").Find(&options).Error; err != nil {
		return Catalog{}, fmt.Errorf("加载选项目录失败: %w", err)
	}

	catalog := BuildCatalog(rows, options)
	s.cache.Set(catalogCacheKey, catalog, catalogCacheTTL)
	return catalog, nil
}

// Invalidate 目录变更后清除缓存
func (s *CatalogService) Invalidate() {
	s.cache.Delete(catalogCacheKey)
}

// BuildCatalog 按类别整理目录行，保持传入顺序
func BuildCatalog(rows []models.Region, options []models.CatalogOption) Catalog {
	c := Catalog{
		Regions:     make([]region.Region, 0, len(rows)),
		CostOptions: []string{},
		Identities:  []string{},
		Genders:     []string{},
		Tags:        []string{},
	}
	for _, r := range rows {
		c.Regions = append(c.Regions, r.ToRegion())
	}
	c.Provinces = region.Provinces(c.Regions)

	for _, o := range options {
		switch o.Kind {
		case models.OptionKindCost:
			c.CostOptions = append(c.CostOptions, o.Label)
		case models.OptionKindIdentity:
			c.Identities = append(c.Identities, o.Label)
		case models.OptionKindGender:
			c.Genders = append(c.Genders, o.Label)
		case models.OptionKindTag:
			c.Tags = append(c.Tags, o.Label)
		}
	}
	return c
}
