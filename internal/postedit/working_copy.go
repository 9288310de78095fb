// Package postedit 发布/修改约拍表单的工作副本。
//
// 工作副本持有约拍可编辑字段的拷贝，以及仅用于省市联动的 SelectedProvinceCode。
// 它不会直接修改原始约拍；提交时与原约拍的只读字段合并生成新的约拍。
package postedit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"yuepai/internal/models"
	"yuepai/internal/region"
)

var (
	// ErrHandedOff 工作副本已交给提交方，提交结束前不能再修改
	ErrHandedOff = errors.New("表单正在提交，请稍候")
	// ErrClosed 工作副本已提交成功或已取消
	ErrClosed = errors.New("表单已关闭")
)

// 需要填写金额的费用选项
var costRequiredOptions = []string{"需要收费", "愿意付费"}

// Fields 可编辑字段
type Fields struct {
	RequiredRegionCode   region.Code `json:"requiredRegionCode"`
	SelectedProvinceCode region.Code `json:"selectedProvinceCode"`
	PhotoURLs            []string    `json:"photoUrls"`
	CostOption           string      `json:"costOption"`
	Cost                 int         `json:"cost"`
	Content              string      `json:"content"`
	Tags                 []string    `json:"tags"`
}

func (f Fields) clone() Fields {
	f.PhotoURLs = cloneStrings(f.PhotoURLs)
	f.Tags = cloneStrings(f.Tags)
	return f
}

// Submitter 提交约拍的外部协作方
type Submitter interface {
	Submit(ctx context.Context, post models.Post) (models.Post, error)
}

// SubmitFunc 让普通函数实现 Submitter
type SubmitFunc func(ctx context.Context, post models.Post) (models.Post, error)

func (f SubmitFunc) Submit(ctx context.Context, post models.Post) (models.Post, error) {
	return f(ctx, post)
}

// WorkingCopy 表单工作副本
type WorkingCopy struct {
	mu        sync.Mutex
	fields    Fields
	handedOff bool
	closed    bool
}

// New 从约拍创建工作副本，省份由地区编码推导，照片和标签做拷贝
func New(post models.Post) *WorkingCopy {
	return &WorkingCopy{
		fields: Fields{
			RequiredRegionCode:   post.RequiredRegionCode,
			SelectedProvinceCode: region.ProvinceOf(post.RequiredRegionCode),
			PhotoURLs:            cloneStrings(post.PhotoURLs),
			CostOption:           post.CostOption,
			Cost:                 post.Cost,
			Content:              post.Content,
			Tags:                 cloneStrings(post.Tags),
		},
	}
}

// Fields 返回当前字段的拷贝
func (w *WorkingCopy) Fields() Fields {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fields.clone()
}

func (w *WorkingCopy) update(fn func(f *Fields)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if w.handedOff {
		return ErrHandedOff
	}
	fn(&w.fields)
	return nil
}

// SelectProvince 只修改省份；已选的下级地区保持不变，直到用户重新选择
func (w *WorkingCopy) SelectProvince(code region.Code) error {
	return w.update(func(f *Fields) { f.SelectedProvinceCode = code })
}

func (w *WorkingCopy) SelectRegion(code region.Code) error {
	return w.update(func(f *Fields) { f.RequiredRegionCode = code })
}

func (w *WorkingCopy) SetCostOption(option string) error {
	return w.update(func(f *Fields) { f.CostOption = option })
}

func (w *WorkingCopy) SetCost(cost int) error {
	return w.update(func(f *Fields) { f.Cost = cost })
}

func (w *WorkingCopy) SetContent(content string) error {
	return w.update(func(f *Fields) { f.Content = content })
}

func (w *WorkingCopy) SetPhotoURLs(urls []string) error {
	return w.update(func(f *Fields) { f.PhotoURLs = cloneStrings(urls) })
}

func (w *WorkingCopy) SetTags(tags []string) error {
	return w.update(func(f *Fields) { f.Tags = cloneStrings(tags) })
}

// ToggleTag 切换标签选中状态，返回切换后的标签
func (w *WorkingCopy) ToggleTag(tag string) ([]string, error) {
	var tags []string
	err := w.update(func(f *Fields) {
		f.Tags = Toggle(f.Tags, tag)
		tags = cloneStrings(f.Tags)
	})
	return tags, err
}

// SubRegions 当前省份下可选的地区；未选省份时为空
func (w *WorkingCopy) SubRegions(all []region.Region) []region.Region {
	w.mu.Lock()
	province := w.fields.SelectedProvinceCode
	w.mu.Unlock()
	return region.SubRegionsOf(all, province)
}

// RegionOptions 表单中地区下拉框的选项：当前省份下的地区，
// 已选地区属于其他省份时追加在末尾，换省份后仍能看到并原样提交
func (w *WorkingCopy) RegionOptions(all []region.Region) []region.Region {
	w.mu.Lock()
	province, required := w.fields.SelectedProvinceCode, w.fields.RequiredRegionCode
	w.mu.Unlock()
	options := region.SubRegionsOf(all, province)
	if required == 0 {
		return options
	}
	if _, ok := region.Lookup(options, required); ok {
		return options
	}
	if r, ok := region.Lookup(all, required); ok {
		options = append(options, r)
	}
	return options
}

// ShouldInputCost 只有"需要收费"和"愿意付费"需要填写金额
func (w *WorkingCopy) ShouldInputCost() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return costApplicable(w.fields.CostOption)
}

func costApplicable(option string) bool {
	for _, o := range costRequiredOptions {
		if o == option {
			return true
		}
	}
	return false
}

// Validate 校验必填项和长度限制
func (w *WorkingCopy) Validate() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return validateFields(w.fields)
}

// Payload 原约拍的只读字段 + 工作副本的可编辑字段
func (w *WorkingCopy) Payload(original models.Post) models.Post {
	w.mu.Lock()
	defer w.mu.Unlock()
	return payload(original, w.fields)
}

func payload(original models.Post, f Fields) models.Post {
	post := original
	post.RequiredRegionCode = f.RequiredRegionCode
	post.PhotoURLs = cloneStrings(f.PhotoURLs)
	post.CostOption = f.CostOption
	post.Cost = f.Cost
	post.Content = f.Content
	post.Tags = cloneStrings(f.Tags)
	return post
}

// Submit 校验通过后把合并结果交给 submitter。
// 提交期间工作副本拒绝修改；提交失败时恢复可编辑并保留已填内容。
func (w *WorkingCopy) Submit(ctx context.Context, original models.Post, s Submitter) (models.Post, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return models.Post{}, ErrClosed
	}
	if w.handedOff {
		w.mu.Unlock()
		return models.Post{}, ErrHandedOff
	}
	if err := validateFields(w.fields); err != nil {
		w.mu.Unlock()
		return models.Post{}, err
	}
	post := payload(original, w.fields)
	w.handedOff = true
	w.mu.Unlock()

	saved, err := s.Submit(ctx, post)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.handedOff = false
	if err != nil {
		return models.Post{}, fmt.Errorf("提交约拍信息失败: %w", err)
	}
	w.closed = true
	return saved, nil
}

// Cancel 丢弃工作副本
func (w *WorkingCopy) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fields = Fields{}
	w.closed = true
}

// Closed 是否已提交成功或已取消
func (w *WorkingCopy) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
