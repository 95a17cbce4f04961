package model

import "time"

// ContactMessage is one visitor inquiry. Messages are append-only:
// nothing in the application updates or deletes them.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactInput is the typed body of POST /api/contact.
type ContactInput struct {
	Name    string `json:"name"    validate:"min=2,max=100"           message:"Name must be between 2 and 100 characters"`
	Email   string `json:"email"   validate:"required,email"          message:"Enter a valid email address"`
	Message string `json:"message" validate:"required,min=10,max=1000" message:"Message must be between 10 and 1000 characters"`
}
