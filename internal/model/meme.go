package model

import "time"

// Meme is either a static library entry or a generated one. Generated memes
// carry the optional denormalized fields of the job they were built for.
type Meme struct {
	ID         int64  `json:"id,omitempty"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	ViralScore int    `json:"viralScore"`

	JobTitle       string   `json:"jobTitle,omitempty"`
	CookedScore    *float64 `json:"cookedScore,omitempty"`
	AutomationRisk *int     `json:"automationRisk,omitempty"`
	JobCategory    string   `json:"jobCategory,omitempty"`
	Platform       string   `json:"platform,omitempty"`

	IsDaily        bool `json:"isDaily,omitempty"`
	DayOfYear      int  `json:"dayOfYear,omitempty"`
	IsTrending     bool `json:"isTrending,omitempty"`
	IsPersonalized bool `json:"isPersonalized,omitempty"`

	Timestamp time.Time `json:"timestamp,omitzero"`
}
