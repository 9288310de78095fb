package validator

import (
	"unicode"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// NoControl 字符串中不允许出现换行等控制字符
func NoControl(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func registerCustom(v *validator.Validate, trans ut.Translator) error {
	if err := v.RegisterValidation("nocontrol", NoControl); err != nil {
		return err
	}
	return v.RegisterTranslation("nocontrol", trans,
		func(t ut.Translator) error {
			return t.Add("nocontrol", "{0}不能包含换行等控制字符", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T("nocontrol", fe.Field())
			return msg
		})
}
