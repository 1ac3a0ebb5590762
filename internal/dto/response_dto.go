package dto

// QuestionResponse is the projection of a question returned by every endpoint.
type QuestionResponse struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
}

type CategoriesResponse struct {
	Success    bool              `json:"success"`
	Categories map[string]string `json:"categories"`
}

type QuestionPageResponse struct {
	Success         bool               `json:"success"`
	TotalQuestions  int64              `json:"total_questions"`
	Questions       []QuestionResponse `json:"questions"`
	CurrentCategory *string            `json:"current_category"`
	Categories      []string           `json:"categories"`
}

type DeleteQuestionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SearchQuestionsResponse struct {
	Success        bool               `json:"success"`
	StatusCode     int                `json:"status_code"`
	TotalQuestions int                `json:"total_questions"`
	Questions      []QuestionResponse `json:"questions"`
}

// CreateQuestionResponse carries no id: clients re-list to see new rows.
type CreateQuestionResponse struct {
	Success    bool `json:"success"`
	StatusCode int  `json:"status_code"`
}

type CategoryQuestionsResponse struct {
	Success        bool               `json:"success"`
	CategoryID     uint               `json:"category_id"`
	TotalQuestions int                `json:"total_questions"`
	Questions      []QuestionResponse `json:"questions"`
}

type PlayResponse struct {
	Success  bool             `json:"success"`
	Question QuestionResponse `json:"question"`
}

type HealthResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
