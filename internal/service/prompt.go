package service

import (
	"fmt"
	"strings"

	"quiz-forge/internal/domain"
)

const questionSchema = `Respond with ONLY a JSON array. Do not add any explanation, markdown or code fences.
Each element must be a JSON object in one of these two formats:
{"question": "question text", "type": "MCQ", "options": ["option A", "option B", "option C", "option D"], "answer": "option B"}
{"question": "statement text", "type": "TrueFalse", "answer": "True"}

Rules:
1. Every MCQ has exactly 4 options and its "answer" is the full text of one of them
2. Every TrueFalse "answer" is either "True" or "False"
3. Questions must not repeat`

// MixedSplit returns how many MCQ and TrueFalse questions a mixed quiz of n questions holds.
// The odd question, if any, goes to MCQ.
func MixedSplit(n int) (mcq, trueFalse int) {
	trueFalse = n / 2
	return n - trueFalse, trueFalse
}

// BuildQuizPrompt renders the instruction sent upstream for one request.
func BuildQuizPrompt(req domain.QuizRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert quiz generator. Create a quiz about %q at %s difficulty.\n", req.Topic, req.Difficulty)

	switch req.QuizType {
	case domain.QuizTypeTrueFalse:
		fmt.Fprintf(&b, "Generate exactly %d True/False questions.\n", req.QuestionCount)
	case domain.QuizTypeMixed:
		mcq, tf := MixedSplit(req.QuestionCount)
		fmt.Fprintf(&b, "Generate exactly %d questions in total: %d multiple-choice (MCQ) questions and %d True/False questions.\n",
			req.QuestionCount, mcq, tf)
	default:
		fmt.Fprintf(&b, "Generate exactly %d multiple-choice (MCQ) questions with 4 options each.\n", req.QuestionCount)
	}

	b.WriteString("\n")
	b.WriteString(questionSchema)
	b.WriteString("\n")
	return b.String()
}
