package postedit

import (
	"errors"
	"yuepai/internal/region"
	"yuepai/internal/validator"

	playground "github.com/go-playground/validator/v10"
)

// 附加照片与内容长度上限
const (
	MaxPhotos     = 9
	MaxContentLen = 100
)

// ValidationError 表单校验失败，Messages 为逐条中文提示
type ValidationError struct {
	Messages []string
	err      error
}

func (e *ValidationError) Error() string {
	return e.err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

type submission struct {
	RequiredRegionCode region.Code `binding:"required" label:"面向地区"`
	CostOption         string      `binding:"required" label:"约拍费用"`
	Cost               int         `label:"金额"`
	Content            string      `binding:"required,max=100" label:"发布内容"`
	PhotoURLs          []string    `binding:"max=9" label:"附加照片"`

	costApplicable bool
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validator {
	v := validator.MustNew()
	v.RegisterStructValidation(func(sl playground.StructLevel) {
		s := sl.Current().Interface().(submission)
		if s.costApplicable && s.Cost < 1 {
			sl.ReportError(s.Cost, "金额", "Cost", "min", "1")
		}
	}, submission{})
	return v
}

func validateFields(f Fields) error {
	err := formValidator.ValidateStruct(submission{
		RequiredRegionCode: f.RequiredRegionCode,
		CostOption:         f.CostOption,
		Cost:               f.Cost,
		Content:            f.Content,
		PhotoURLs:          f.PhotoURLs,
		costApplicable:     costApplicable(f.CostOption),
	})
	if err == nil {
		return nil
	}
	return &ValidationError{Messages: validator.Messages(err), err: err}
}

// ErrUnknownRegion 面向地区不在地区目录中
var ErrUnknownRegion = errors.New("面向地区不存在，请重新选择")

// CheckRegion 已选的面向地区必须在目录中；未选择时交给 Validate 报告。
// 只看目录，不要求与当前省份一致
func (w *WorkingCopy) CheckRegion(all []region.Region) error {
	code := w.Fields().RequiredRegionCode
	if code == 0 {
		return nil
	}
	if _, ok := region.Lookup(all, code); ok {
		return nil
	}
	return &ValidationError{Messages: []string{ErrUnknownRegion.Error()}, err: ErrUnknownRegion}
}
