package handler

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizGenerationService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizGenerationService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Asks the language model for a quiz and returns it with questions and options shuffled
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Quiz parameters"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.ValidatedGenerateRequestKey).(domain.QuizRequest)
	if !ok {
		logger.Get().Error("GenerateQuiz called without a validated request in context")
		return domain.NewInternalError("validated request missing from context", nil)
	}

	result, err := h.service.GenerateQuiz(c.UserContext(), req)
	if err != nil {
		logger.Get().Error("Failed to generate quiz",
			zap.Error(err),
			zap.String("topic", req.Topic),
			zap.String("quiz_type", string(req.QuizType)),
		)
		return err
	}

	return c.JSON(dto.NewQuizResponse(result))
}

// GetQuiz godoc
// @Summary Get a generated quiz
// @Description Returns a quiz previously produced by /generate while it is still cached
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID (ULID)"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quizID := c.Params("id")

	result, err := h.service.GetQuiz(c.UserContext(), quizID)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewQuizResponse(result))
}

// Ping godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} dto.PingResponse
// @Router /ping [get]
func (h *QuizHandler) Ping(c *fiber.Ctx) error {
	return c.JSON(dto.PingResponse{Status: "ok"})
}
