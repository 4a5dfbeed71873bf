package enums

type EmailStatus string

const (
	EmailStatusInvalid EmailStatus = ""

	// EmailStatusScheduled tells the provider to hold the email until its publish date.
	EmailStatusScheduled EmailStatus = "scheduled"
)
