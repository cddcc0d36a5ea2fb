package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"docchat-be/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

// ValidateRequest checks a parsed request DTO against its validate tags
// and converts failures into a single ValidationError naming the first
// offending field.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			field := strings.ToLower(errs[0].Field())
			return apperrors.NewValidation(fmt.Sprintf("Field '%s' failed validation: %s", field, errs[0].Tag()))
		}
		return apperrors.NewValidation(err.Error())
	}
	return nil
}

// UserIdFromLocals reads the authenticated user id the JWT middleware
// stored on the request.
func UserIdFromLocals(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := ctx.Locals("user_id").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewValidation("invalid user identity on request")
	}
	return id, nil
}
