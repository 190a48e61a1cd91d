package quiz

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPassingScore = 70
	Unanswered          = -1
)

type Question struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type Quiz struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	PassingScore int        `json:"passing_score"`
	Questions    []Question `json:"questions"`
}

// PassMark returns the passing score, falling back to the default when unset.
func (q Quiz) PassMark() int {
	if q.PassingScore <= 0 {
		return DefaultPassingScore
	}
	return q.PassingScore
}

// Attempt is one graded submission.
type Attempt struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	UserID    int       `json:"user_id"`
	CourseID  string    `json:"course_id"`
	Score     int       `json:"score"`
	Passed    bool      `json:"passed"`
	Correct   int       `json:"correct"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}
