package links

import "strings"

type UTM struct {
	Source   string
	Medium   string
	Campaign string
}

// AppendUTM tags url with the campaign parameters. Values are appended as-is,
// and a url that already carries utm_* parameters gets a second set.
func AppendUTM(url string, utm UTM) string {
	delimiter := "?"
	if strings.Contains(url, "?") {
		delimiter = "&"
	}
	return url + delimiter +
		"utm_source=" + utm.Source +
		"&utm_medium=" + utm.Medium +
		"&utm_campaign=" + utm.Campaign
}

// TipLink returns the instrumented tip link, or an inert anchor when no tip link is configured.
func TipLink(tip string, utm UTM) string {
	if tip == "" {
		return "#"
	}
	return AppendUTM(tip, utm)
}
