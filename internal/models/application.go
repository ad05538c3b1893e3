package models

import (
	"time"

	"github.com/google/uuid"
)

// Application is one fresher-application form submission. Insert-only.
type Application struct {
	ID        string    `json:"id"`
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Year      string    `json:"year"`
	Branch    string    `json:"branch"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func NewApplication(login, name, email, year, branch, reason string) *Application {
	return &Application{
		ID:     uuid.New().String(),
		Login:  login,
		Name:   name,
		Email:  email,
		Year:   year,
		Branch: branch,
		Reason: reason,
	}
}
