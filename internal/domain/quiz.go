package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QuizType is the kind of quiz a caller asks for.
type QuizType string

const (
	QuizTypeMCQ       QuizType = "MCQ"
	QuizTypeTrueFalse QuizType = "TrueFalse"
	QuizTypeMixed     QuizType = "Mixed"
)

// ParseQuizType accepts the canonical names and the spellings clients commonly send.
func ParseQuizType(s string) (QuizType, error) {
	switch normalizeTypeName(s) {
	case "mcq", "multiplechoice":
		return QuizTypeMCQ, nil
	case "truefalse", "tf":
		return QuizTypeTrueFalse, nil
	case "mixed":
		return QuizTypeMixed, nil
	default:
		return "", fmt.Errorf("unknown quiz type %q", s)
	}
}

// QuestionType is the shape of a single generated question.
type QuestionType string

const (
	QuestionTypeUnknown   QuestionType = ""
	QuestionTypeMCQ       QuestionType = "MCQ"
	QuestionTypeTrueFalse QuestionType = "TrueFalse"
)

func parseQuestionType(s string) QuestionType {
	switch normalizeTypeName(s) {
	case "mcq", "multiplechoice":
		return QuestionTypeMCQ
	case "truefalse", "tf":
		return QuestionTypeTrueFalse
	default:
		return QuestionTypeUnknown
	}
}

func normalizeTypeName(s string) string {
	r := strings.NewReplacer("/", "", "_", "", "-", "", " ", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}

// QuizRequest is the immutable input of one generation call.
type QuizRequest struct {
	QuizType      QuizType
	Difficulty    string
	QuestionCount int
	Topic         string
}

// QuizQuestion is one question as returned by the upstream model.
//
// The typed fields are a view over the decoded object; every field the
// model sent is kept and written back on marshal, so unknown fields survive.
// Only options is re-encoded, with its current order.
type QuizQuestion struct {
	Question   string
	Type       QuestionType
	Options    []string
	HasOptions bool
	Answer     string

	fields map[string]json.RawMessage
}

// NewMCQQuestion builds a multiple-choice question.
func NewMCQQuestion(question string, options []string, answer string) *QuizQuestion {
	return &QuizQuestion{
		Question:   question,
		Type:       QuestionTypeMCQ,
		Options:    options,
		HasOptions: options != nil,
		Answer:     answer,
	}
}

// NewTrueFalseQuestion builds a true/false question.
func NewTrueFalseQuestion(question string, answer string) *QuizQuestion {
	return &QuizQuestion{
		Question: question,
		Type:     QuestionTypeTrueFalse,
		Answer:   answer,
	}
}

// IsMCQ reports whether the question is a multiple-choice item.
func (q *QuizQuestion) IsMCQ() bool {
	return q.Type == QuestionTypeMCQ
}

// AnswerInOptions reports whether the recorded answer text is one of the options.
func (q *QuizQuestion) AnswerInOptions() bool {
	for _, opt := range q.Options {
		if opt == q.Answer {
			return true
		}
	}
	return false
}

// Field returns the raw JSON of a field as sent upstream.
func (q *QuizQuestion) Field(name string) (json.RawMessage, bool) {
	raw, ok := q.fields[name]
	return raw, ok
}

// UnmarshalJSON decodes any JSON object. Fields with an unexpected type are
// kept as raw JSON and left out of the typed view.
func (q *QuizQuestion) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("quiz question must be a JSON object, got null")
	}

	decoded := QuizQuestion{fields: fields}

	if raw, ok := fields["question"]; ok {
		_ = json.Unmarshal(raw, &decoded.Question)
	}
	if raw, ok := fields["type"]; ok {
		var typeName string
		if err := json.Unmarshal(raw, &typeName); err == nil {
			decoded.Type = parseQuestionType(typeName)
		}
	}
	if raw, ok := fields["options"]; ok {
		var options []string
		if err := json.Unmarshal(raw, &options); err == nil && options != nil {
			decoded.Options = options
			decoded.HasOptions = true
		}
	}
	if raw, ok := fields["answer"]; ok {
		_ = json.Unmarshal(raw, &decoded.Answer)
	}

	*q = decoded
	return nil
}

// MarshalJSON writes back the original fields, with options in their current order.
func (q *QuizQuestion) MarshalJSON() ([]byte, error) {
	if q.fields == nil {
		return json.Marshal(struct {
			Question string       `json:"question"`
			Type     QuestionType `json:"type"`
			Options  []string     `json:"options,omitempty"`
			Answer   string       `json:"answer"`
		}{q.Question, q.Type, q.Options, q.Answer})
	}

	out := make(map[string]json.RawMessage, len(q.fields))
	for k, v := range q.fields {
		out[k] = v
	}
	if q.HasOptions {
		raw, err := json.Marshal(q.Options)
		if err != nil {
			return nil, err
		}
		out["options"] = raw
	}
	return json.Marshal(out)
}

// QuizResult is an ordered list of questions, optionally tagged with the id it was stored under.
type QuizResult struct {
	ID        string          `json:"quiz_id,omitempty"`
	Questions []*QuizQuestion `json:"quiz"`
}
