package quiz

import "math"

type QuestionResult struct {
	QuestionID    int    `json:"question_id"`
	Selected      int    `json:"selected"`
	CorrectAnswer int    `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

type Result struct {
	Score      int              `json:"score"`
	Passed     bool             `json:"passed"`
	Correct    int              `json:"correct"`
	Incorrect  int              `json:"incorrect"`
	Unanswered int              `json:"unanswered"`
	Questions  []QuestionResult `json:"questions"`
}

// Grade scores answers positionally against the quiz questions. Missing
// answers, Unanswered and out-of-range option indexes count as unanswered.
func Grade(q Quiz, answers []int) Result {
	res := Result{Questions: make([]QuestionResult, 0, len(q.Questions))}

	for i, question := range q.Questions {
		selected := Unanswered
		if i < len(answers) {
			selected = answers[i]
		}
		if selected < 0 || selected >= len(question.Options) {
			selected = Unanswered
		}

		qr := QuestionResult{
			QuestionID:    question.ID,
			Selected:      selected,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   question.Explanation,
		}
		switch {
		case selected == Unanswered:
			res.Unanswered++
		case selected == question.CorrectAnswer:
			qr.IsCorrect = true
			res.Correct++
		default:
			res.Incorrect++
		}
		res.Questions = append(res.Questions, qr)
	}

	if len(q.Questions) > 0 {
		res.Score = int(math.Round(float64(res.Correct) / float64(len(q.Questions)) * 100))
	}
	res.Passed = res.Score >= q.PassMark()
	return res
}

// PublicQuestion is a question without its answer key.
type PublicQuestion struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type PublicQuiz struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	PassingScore int              `json:"passing_score"`
	Questions    []PublicQuestion `json:"questions"`
}

func (q Quiz) Public() PublicQuiz {
	out := PublicQuiz{
		ID:           q.ID,
		Title:        q.Title,
		Description:  q.Description,
		PassingScore: q.PassMark(),
		Questions:    make([]PublicQuestion, 0, len(q.Questions)),
	}
	for _, qq := range q.Questions {
		out.Questions = append(out.Questions, PublicQuestion{
			ID:       qq.ID,
			Question: qq.Question,
			Options:  append([]string(nil), qq.Options...),
		})
	}
	return out
}
