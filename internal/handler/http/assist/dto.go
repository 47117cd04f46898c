package assist

type generateRequest struct {
	Prompt string `json:"prompt"`
	UserID string `json:"user_id"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type titlesResponse struct {
	Titles []string `json:"titles"`
}

type questionsResponse struct {
	RecentQuestions []string `json:"recent_questions"`
}
