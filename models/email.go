package models

import (
	"time"

	"github.com/kova98/lueur/enums"
)

type Email struct {
	Subject string
	Body    string
}

type ScheduledEmail struct {
	ID        string
	Subject   string
	PublishAt time.Time
}

type CreateEmailRequest struct {
	Subject      string            `json:"subject"`
	Body         string            `json:"body"`
	Status       enums.EmailStatus `json:"status"`
	PublishDate  string            `json:"publish_date"`
	NewsletterID string            `json:"newsletter_id,omitempty"`
}

type CreateEmailResponse struct {
	ID string `json:"id"`
}
