package handler

import (
	"quiz-forge/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the quiz endpoints on router.
func RegisterRoutes(router fiber.Router, quizHandler *QuizHandler) {
	validator := middleware.NewValidationMiddleware()

	router.Get("/ping", quizHandler.Ping)
	router.Post("/generate", validator.ValidateGenerateQuizRequest(), quizHandler.GenerateQuiz)
	router.Get("/quiz/:id", quizHandler.GetQuiz)
}
