package core

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects the reasoning strategy used to turn free text into a location.
type Mode string

const (
	ModeReact Mode = "react"
	ModeCoT   Mode = "cot"
	ModeToT   Mode = "tot"
)

// ParseMode maps a user-supplied token to a Mode. A blank token selects the
// default; anything unknown is reported so the caller can warn and fall back.
func ParseMode(token string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "", string(ModeReact):
		return ModeReact, nil
	case string(ModeCoT):
		return ModeCoT, nil
	case string(ModeToT):
		return ModeToT, nil
	default:
		return ModeReact, fmt.Errorf("unknown reasoning mode %q", token)
	}
}

// WeatherSnapshot holds the fields the pipeline actually reads from the
// weather API, metric units throughout.
type WeatherSnapshot struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Condition   string  `json:"condition"`
}

// WikiSnippet is a short background blurb about a place plus its source page.
type WikiSnippet struct {
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

// Candidate is one scored interpretation of an ambiguous location query.
type Candidate struct {
	Location string `json:"location"`
	Score    int    `json:"score"`
	Reason   string `json:"reason"`
}

// Extraction is the result of running a reasoning strategy over a query.
// Which metadata fields are populated depends on the mode that produced it.
type Extraction struct {
	Location      string `json:"location"`
	Mode          Mode   `json:"mode"`
	NeedsWeather  bool   `json:"needs_weather"`
	NeedsWikiInfo bool   `json:"needs_wiki_info"`
	TimePeriod    string `json:"time_period"`
	Aspects       []string `json:"aspects,omitempty"`

	// CoT metadata
	Steps []string `json:"steps,omitempty"`

	// ToT metadata
	Candidates []Candidate `json:"candidates,omitempty"`
	Reasoning  string      `json:"reasoning,omitempty"`
}

// Reflection is the LLM's judgement of whether fetched data suffices.
type Reflection struct {
	Sufficient          bool     `json:"sufficient"`
	Missing             []string `json:"missing,omitempty"`
	Notes               string   `json:"notes,omitempty"`
	SuggestedAction     string   `json:"suggested_action,omitempty"`
	AlternativeLocation string   `json:"alternative_location,omitempty"`
}

// Turn is one completed query/reply exchange, persisted for recall.
type Turn struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Mode      Mode      `json:"mode"`
	Query     string    `json:"query"`
	Location  string    `json:"location"`
	Reply     string    `json:"reply"`
	CreatedAt time.Time `json:"created_at"`
}
