package validator

import (
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())
	RegisterCustom(validate)
}

func GetValidator() *validator.Validate {
	return validate
}

// RegisterCustom adds the project's custom rules to v.
func RegisterCustom(v *validator.Validate) {
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("password", validatePassword)
}

// RegisterWithGin installs the custom rules on gin's binding validator so
// `binding:"password"` works on request structs.
func RegisterWithGin() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterCustom(v)
	}
}

func validatePassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// IsStrongPassword requires at least 8 characters with a lowercase letter,
// an uppercase letter and a digit.
func IsStrongPassword(password string) bool {
	if len([]rune(password)) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}
