package validator

import (
	"github.com/go-playground/validator/v10"
)

// localeTag accepts well-formed BCP 47 tags that carry at least one subtag
// after the language, e.g. fr-FR or zh-Hans-CN. The voice catalog has no
// language-only locales.
const localeTag = "bcp47_language_tag,contains=-"

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	v.RegisterAlias("locale", localeTag)
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// ValidLocale reports whether locale is shaped like a voice catalog locale
func (cv *CustomValidator) ValidLocale(locale string) bool {
	return cv.v.Var(locale, "required,locale") == nil
}
