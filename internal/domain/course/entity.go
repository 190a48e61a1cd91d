package course

type Category string

const (
	CategoryTechnical Category = "technical"
	CategorySecurity  Category = "security"
)

func (c Category) Valid() bool {
	return c == CategoryTechnical || c == CategorySecurity
}

type Course struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Level       string `json:"level"`
	Image       string `json:"image"`
}

type ContentType string

const (
	ContentVideo    ContentType = "video"
	ContentArticle  ContentType = "article"
	ContentExercise ContentType = "exercise"
)

type ContentItem struct {
	ID        int         `json:"id"`
	Title     string      `json:"title"`
	Type      ContentType `json:"type"`
	Duration  string      `json:"duration"`
	Completed bool        `json:"completed"`
}

type Detail struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	TotalDuration string        `json:"total_duration"`
	Difficulty    string        `json:"difficulty"`
	Contents      []ContentItem `json:"contents"`
}

type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// TopicContent is the reading material for one topic of a course.
type TopicContent struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Sections      []Section `json:"sections"`
	ExternalLinks []Link    `json:"external_links"`
	QuizAvailable bool      `json:"quiz_available"`
}
