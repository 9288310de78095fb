package validator

import (
	"errors"
	"reflect"

	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	translations "github.com/go-playground/validator/v10/translations/zh"
	"go.uber.org/multierr"
)

// Validator 结构体校验，错误信息为中文
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New 使用 binding 标签校验，字段名优先取 label 标签
func New() (*Validator, error) {
	v := &Validator{validate: validator.New()}
	v.validate.SetTagName("binding")
	v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})
	v.translator, _ = ut.New(zh.New()).GetTranslator("zh")
	if err := translations.RegisterDefaultTranslations(v.validate, v.translator); err != nil {
		return nil, err
	}
	if err := registerCustom(v.validate, v.translator); err != nil {
		return nil, err
	}
	return v, nil
}

// MustNew 供包级变量初始化使用
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// RegisterStructValidation 注册结构体级别的校验
func (v *Validator) RegisterStructValidation(fn validator.StructLevelFunc, types ...interface{}) {
	v.validate.RegisterStructValidation(fn, types...)
}

// ValidateStruct 校验结构体，多个错误通过 multierr 合并；非结构体直接通过。
// 同时满足 gin 的 binding.StructValidator，可替换 gin 默认的校验器
func (v *Validator) ValidateStruct(obj interface{}) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	return v.Translate(v.validate.Struct(obj))
}

// Engine 底层的 validator 实例
func (v *Validator) Engine() interface{} {
	return v.validate
}

// Translate 把 validator 的错误翻译为中文
func (v *Validator) Translate(err error) error {
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	var errs error
	for _, fe := range vErrs {
		errs = multierr.Append(errs, errors.New(fe.Translate(v.translator)))
	}
	return errs
}

// Messages 展开合并后的错误，便于在表单中逐条展示
func Messages(err error) []string {
	errs := multierr.Errors(err)
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Error())
	}
	return messages
}
