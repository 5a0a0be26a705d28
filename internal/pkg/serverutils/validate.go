package serverutils

import (
	"fmt"

	"ai-chat-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks a DTO's validate tags and converts the first
// violation into a ValidationError kind.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return apperror.New(apperror.KindValidation,
				fmt.Sprintf("field '%s' failed on the '%s' rule", first.Field(), first.Tag()))
		}
		return apperror.Wrap(apperror.KindValidation, "invalid request body", err)
	}
	return nil
}
