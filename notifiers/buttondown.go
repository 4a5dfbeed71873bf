package notifiers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kova98/lueur/enums"
	"github.com/kova98/lueur/models"
)

var ErrMissingEmailID = errors.New("provider response has no email id")

// Buttondown talks to the newsletter provider's REST API.
type Buttondown struct {
	logger       *slog.Logger
	client       *resty.Client
	newsletterID string
}

func NewButtondown(logger *slog.Logger, client *resty.Client, baseURL, apiKey, newsletterID string) *Buttondown {
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetHeader("Authorization", "Token "+apiKey)
	client.SetHeader("Accept", "application/json")

	return &Buttondown{
		logger:       logger,
		client:       client,
		newsletterID: newsletterID,
	}
}

// Schedule creates the email in scheduled state and returns the id the provider assigned.
func (b *Buttondown) Schedule(ctx context.Context, mail models.Email, publishAt time.Time) (models.ScheduledEmail, error) {
	req := models.CreateEmailRequest{
		Subject:      mail.Subject,
		Body:         mail.Body,
		Status:       enums.EmailStatusScheduled,
		PublishDate:  publishAt.UTC().Format(time.RFC3339),
		NewsletterID: b.newsletterID,
	}

	var created models.CreateEmailResponse
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&created).
		ForceContentType("application/json").
		Post("/emails")
	if err != nil {
		return models.ScheduledEmail{}, fmt.Errorf("create email: %w", err)
	}
	if resp.IsError() {
		return models.ScheduledEmail{}, statusError("create email", resp)
	}
	if created.ID == "" {
		return models.ScheduledEmail{}, ErrMissingEmailID
	}

	b.logger.Info("email scheduled", "id", created.ID, "publish_date", req.PublishDate)

	return models.ScheduledEmail{
		ID:        created.ID,
		Subject:   mail.Subject,
		PublishAt: publishAt,
	}, nil
}

// Analytics fetches delivery counters for a previously scheduled email.
func (b *Buttondown) Analytics(ctx context.Context, emailID string) (models.Analytics, error) {
	var analytics models.Analytics
	resp, err := b.client.R().
		SetContext(ctx).
		SetPathParam("id", emailID).
		SetResult(&analytics).
		ForceContentType("application/json").
		Get("/emails/{id}/analytics")
	if err != nil {
		return models.Analytics{}, fmt.Errorf("get analytics for %s: %w", emailID, err)
	}
	if resp.IsError() {
		return models.Analytics{}, statusError("get analytics for "+emailID, resp)
	}

	b.logger.Debug("fetched analytics", "id", emailID, "deliveries", analytics.Deliveries, "opens", analytics.Opens)
	return analytics, nil
}

func statusError(op string, resp *resty.Response) error {
	body := resp.String()
	if len(body) > 300 {
		body = body[:300] + "..."
	}
	return fmt.Errorf("%s: provider returned status %d: %s", op, resp.StatusCode(), body)
}
