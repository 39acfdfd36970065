package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// 北美号码：可选国家码、可选括号，分隔符为空格/点/横线
var phoneRe = regexp.MustCompile(`^(\+\d{1,2}\s?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}$`)

func validPhone(fl validator.FieldLevel) bool {
	return phoneRe.MatchString(fl.Field().String())
}

// RegisterValidators 在 gin 默认校验器上注册自定义规则，重复调用无副作用
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("phone", validPhone)
}
