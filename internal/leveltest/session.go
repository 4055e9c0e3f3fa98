package leveltest

import (
	"errors"
	"math"
)

var (
	ErrCompleted     = errors.New("level test already completed")
	ErrInvalidOption = errors.New("answer is not one of the question's options")
	ErrNotCompleted  = errors.New("level test not completed")
	ErrAnswerCount   = errors.New("wrong number of answers")
)

// Result is the outcome of a completed test
type Result struct {
	Score          int            `json:"score"`
	TotalQuestions int            `json:"totalQuestions"`
	Percentage     int            `json:"percentage"`
	Level          Level          `json:"level"`
	Recommendation Recommendation `json:"recommendation"`
}

// Session walks through the questions in order. Answers can only be appended.
type Session struct {
	answers []int
}

// NewSession starts at question 1
func NewSession() *Session {
	return &Session{answers: make([]int, 0, TotalQuestions)}
}

// Current returns the question awaiting an answer
func (s *Session) Current() (Question, bool) {
	if s.Done() {
		return Question{}, false
	}
	return questions[len(s.answers)], true
}

// Answer records the chosen option for the current question
func (s *Session) Answer(option int) error {
	q, ok := s.Current()
	if !ok {
		return ErrCompleted
	}
	if option < 0 || option >= len(q.Options) {
		return ErrInvalidOption
	}
	s.answers = append(s.answers, option)
	return nil
}

// Done reports whether every question has been answered
func (s *Session) Done() bool {
	return len(s.answers) >= TotalQuestions
}

// Progress is the number of answered questions
func (s *Session) Progress() int {
	return len(s.answers)
}

// Reset returns to question 1 with answers cleared
func (s *Session) Reset() {
	s.answers = s.answers[:0]
}

// Result scores a completed session
func (s *Session) Result() (Result, error) {
	if !s.Done() {
		return Result{}, ErrNotCompleted
	}

	score := 0
	for i, a := range s.answers {
		if a == questions[i].Correct {
			score++
		}
	}

	pct := Percentage(score, TotalQuestions)
	level := LevelFor(pct)
	return Result{
		Score:          score,
		TotalQuestions: TotalQuestions,
		Percentage:     pct,
		Level:          level,
		Recommendation: RecommendationFor(level),
	}, nil
}

// Score replays answers through a fresh session
func Score(answers []int) (Result, error) {
	if len(answers) != TotalQuestions {
		return Result{}, ErrAnswerCount
	}
	s := NewSession()
	for _, a := range answers {
		if err := s.Answer(a); err != nil {
			return Result{}, err
		}
	}
	return s.Result()
}

// Percentage is round(100 * score / total)
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(total)))
}

// LevelFor buckets a percentage: 80 and above advanced, 60 and above intermediate
func LevelFor(percentage int) Level {
	switch {
	case percentage >= 80:
		return Advanced
	case percentage >= 60:
		return Intermediate
	default:
		return Beginner
	}
}
