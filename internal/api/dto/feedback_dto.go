package dto

import "time"

// FeedbackRequest payload.
type FeedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// FeedbackResponse describes a stored feedback entry.
type FeedbackResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
