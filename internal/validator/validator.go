// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tickerRegex matches plain uppercase ticker symbols (letters, digits, dots),
// e.g. AAPL, BRK.B. Lowercase input is normalized by the service layer, so
// binding accepts either case.
var tickerRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9.]{0,11}$`)

// e164Regex matches international phone numbers in E.164 form.
var e164Regex = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)

// shareCodeRegex matches 6-digit share codes.
var shareCodeRegex = regexp.MustCompile(`^\d{6}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticker", validateTicker)
		_ = v.RegisterValidation("e164", validateE164)
		_ = v.RegisterValidation("share_code", validateShareCode)
	}
}

func validateTicker(fl validator.FieldLevel) bool {
	return tickerRegex.MatchString(fl.Field().String())
}

func validateE164(fl validator.FieldLevel) bool {
	return e164Regex.MatchString(fl.Field().String())
}

func validateShareCode(fl validator.FieldLevel) bool {
	return shareCodeRegex.MatchString(fl.Field().String())
}
