package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// bindMessage maps a binding failure to the client message for the first
// failing rule. fallback covers malformed bodies and unmapped rules.
func bindMessage(err error, messages map[string]string, fallback string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fallback
	}
	fe := verrs[0]
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[fe.Tag()]; ok {
		return msg
	}
	return fallback
}
