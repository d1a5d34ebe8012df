package middleware

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidatedGenerateRequestKey holds the parsed domain.QuizRequest in fiber locals.
const ValidatedGenerateRequestKey = "validated_generate_request"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateGenerateQuizRequest parses and validates the POST /generate body.
func (vm *ValidationMiddleware) ValidateGenerateQuizRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.GenerateQuizRequest
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("request body must be a JSON object with quiz_type, difficulty, question_count and topic")
		}

		if errors := vm.validator.ValidateGenerateQuizRequest(req); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		quizReq, err := req.ToDomain()
		if err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("quiz_type", req.QuizType)}
		}

		c.Locals(ValidatedGenerateRequestKey, quizReq)
		return c.Next()
	}
}
