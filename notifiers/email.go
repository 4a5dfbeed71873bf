package notifiers

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kova98/lueur/links"
	"github.com/kova98/lueur/models"
)

const (
	subjectPrefix   = "✨ "
	subjectMaxRunes = 40
	subjectEllipsis = "…"
	dateLayout      = "02/01/2006"
)

type Mailer struct {
	recipientToken string
	siteURL        string
	tipLink        string
	utm            links.UTM
	loc            *time.Location
}

func NewMailer(recipientToken, siteURL, tipLink string, utm links.UTM, loc *time.Location) *Mailer {
	if loc == nil {
		loc = time.Local
	}
	return &Mailer{
		recipientToken: recipientToken,
		siteURL:        siteURL,
		tipLink:        tipLink,
		utm:            utm,
		loc:            loc,
	}
}

// LoadTemplate reads the externally authored HTML template.
func LoadTemplate(path string) (string, error) {
	tmpl, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("email template not found at %s: %w", path, err)
	}
	return string(tmpl), nil
}

// DailyEmail renders the template for the chosen quote and product.
// Placeholders are replaced in a single pass, so substituted text is never
// scanned again for placeholders. {{NAME}} becomes the provider's own
// per-subscriber token and is filled in at send time.
func (m *Mailer) DailyEmail(template string, quote models.Quote, product models.Product, now time.Time) models.Email {
	replacer := strings.NewReplacer(
		"{{NAME}}", m.recipientToken,
		"{{QUOTE}}", quote.Text,
		"{{PRODUCT_TITLE}}", product.Title,
		"{{PRODUCT_DESC}}", product.Description,
		"{{PRODUCT_IMG}}", links.ResolveImage(product.Image, m.siteURL),
		"{{PRODUCT_LINK}}", links.AppendUTM(product.Link, m.utm),
		"{{TIP_LINK}}", links.TipLink(m.tipLink, m.utm),
		"{{DATE}}", now.In(m.loc).Format(dateLayout),
	)

	return models.Email{
		Subject: Subject(quote.Text),
		Body:    replacer.Replace(template),
	}
}

// Subject prefixes the quote with a sparkle, cutting it at 40 characters.
func Subject(text string) string {
	if utf8.RuneCountInString(text) <= subjectMaxRunes {
		return subjectPrefix + text
	}
	runes := []rune(text)
	return subjectPrefix + string(runes[:subjectMaxRunes]) + subjectEllipsis
}
