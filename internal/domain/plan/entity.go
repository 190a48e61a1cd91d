package plan

// LearningPlan is an ordered sequence of weekly units.
type LearningPlan []Week

type Week struct {
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func (p LearningPlan) Clone() LearningPlan {
	if p == nil {
		return nil
	}
	out := make(LearningPlan, len(p))
	for i, w := range p {
		out[i] = Week{Title: w.Title, Tasks: append([]Task(nil), w.Tasks...)}
	}
	return out
}

func (p LearningPlan) TaskCount() int {
	n := 0
	for _, w := range p {
		n += len(w.Tasks)
	}
	return n
}
