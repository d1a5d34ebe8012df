package service

import (
	"math/rand"
	"sync"

	"quiz-forge/internal/domain"
)

// IntegrityShuffler randomizes presentation order without changing which answer is correct.
type IntegrityShuffler struct {
	rnd domain.Randomizer
}

func NewIntegrityShuffler(rnd domain.Randomizer) *IntegrityShuffler {
	if rnd == nil {
		rnd = NewMathRandomizer()
	}
	return &IntegrityShuffler{rnd: rnd}
}

// Shuffle reorders questions in place, then the options of every MCQ whose
// answer is among its options. Answers are matched by text, so no index
// needs remapping. An MCQ whose answer is missing from its options is left alone.
func (s *IntegrityShuffler) Shuffle(questions []*domain.QuizQuestion) {
	s.rnd.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	for _, q := range questions {
		if !q.IsMCQ() || !q.HasOptions {
			continue
		}
		if !q.AnswerInOptions() {
			continue
		}
		opts := q.Options
		s.rnd.Shuffle(len(opts), func(i, j int) {
			opts[i], opts[j] = opts[j], opts[i]
		})
	}
}

type mathRandomizer struct{}

// NewMathRandomizer uses the process-wide math/rand source, which is safe for concurrent use.
func NewMathRandomizer() domain.Randomizer {
	return mathRandomizer{}
}

func (mathRandomizer) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

type seededRandomizer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeededRandomizer returns a reproducible source; it serializes access so it can be shared.
func NewSeededRandomizer(seed int64) domain.Randomizer {
	return &seededRandomizer{rnd: rand.New(rand.NewSource(seed))}
}

func (r *seededRandomizer) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rnd.Shuffle(n, swap)
}
