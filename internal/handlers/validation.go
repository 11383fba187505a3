package handlers

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// accountNumberFormat is the shape shared by every standard; the company's
// standard is checked by the chart of accounts service.
var accountNumberFormat = regexp.MustCompile(`^[0-9]{1,20}$`)

// RegisterValidators adds the custom binding tags used by the request DTOs.
// It must run before the first request is bound.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("accountnumber", func(fl validator.FieldLevel) bool {
		return accountNumberFormat.MatchString(fl.Field().String())
	})
}
