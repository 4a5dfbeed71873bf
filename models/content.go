package models

type Quote struct {
	Text string `json:"text"`
}

type Product struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Image       string `json:"image,omitempty"`
}
