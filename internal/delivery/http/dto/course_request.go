package dto

type TopicContentRequest struct {
	CourseTitle string `json:"course_title" validate:"max=200"`
	TopicTitle  string `json:"topic_title" validate:"notblank,max=200"`
}

type GenerateQuizRequest struct {
	Topic string `json:"topic" validate:"max=200"`
}

type SubmitQuizRequest struct {
	Answers []int `json:"answers" validate:"required,max=100,dive,gte=-1"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"notblank,max=2000"`
}
