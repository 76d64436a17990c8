package reason

import (
	"errors"
	"reflect"
	"testing"

	"github.com/sandevgo/wearbot/internal/core"
)

func TestParsePlan(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected plan
		wantErr  bool
	}{
		{
			name: "complete block",
			input: `LOCATION: Paris
NEEDS_WEATHER: yes
NEEDS_LOCATION_INFO: no
TIME_PERIOD: Tomorrow
WEATHER_ASPECTS: temperature, rain`,
			expected: plan{
				Location:      "Paris",
				NeedsWeather:  true,
				NeedsWikiInfo: false,
				TimePeriod:    "tomorrow",
				Aspects:       []string{"temperature", "rain"},
			},
		},
		{
			name:  "location only keeps defaults",
			input: "LOCATION: Tokyo",
			expected: plan{
				Location:      "Tokyo",
				NeedsWeather:  true,
				NeedsWikiInfo: true,
				TimePeriod:    "current",
			},
		},
		{
			name:  "trailing punctuation stripped",
			input: "LOCATION: London?\nNEEDS_WEATHER: yes",
			expected: plan{
				Location:      "London",
				NeedsWeather:  true,
				NeedsWikiInfo: true,
				TimePeriod:    "current",
			},
		},
		{
			name:  "empty location value still counts as present",
			input: "LOCATION:\nNEEDS_WEATHER: no",
			expected: plan{
				NeedsWeather:  false,
				NeedsWikiInfo: true,
				TimePeriod:    "current",
			},
		},
		{
			name:    "no location line",
			input:   "The user is asking about weather somewhere.",
			wantErr: true,
		},
		{
			name:    "empty reply",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePlan(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("parsePlan() error = %v, want ErrMalformed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePlan() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parsePlan() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestParseCoT(t *testing.T) {
	input := `Step 1: The query mentions a city.
Step 2: The city is Berlin.
LOCATION: Berlin`

	got, err := parseCoT(input)
	if err != nil {
		t.Fatalf("parseCoT() unexpected error: %v", err)
	}
	if got.Location != "Berlin" {
		t.Errorf("Location = %q, want %q", got.Location, "Berlin")
	}
	if len(got.Steps) != 2 {
		t.Errorf("Steps = %d, want 2", len(got.Steps))
	}

	if _, err := parseCoT("no structured output here"); !errors.Is(err, ErrMalformed) {
		t.Errorf("parseCoT() error = %v, want ErrMalformed", err)
	}
}

func TestParseToT(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected totResult
		wantErr  bool
	}{
		{
			name: "two candidates with selection",
			input: `POSSIBLE LOCATION: Springfield, Illinois
SCORE: 7
REASON: Most populous Springfield
POSSIBLE LOCATION: Springfield, Missouri
SCORE: 5
REASON: Also plausible
SELECTED LOCATION: Springfield, Illinois
SELECTION REASONING: Higher confidence score`,
			expected: totResult{
				Candidates: []core.Candidate{
					{Location: "Springfield, Illinois", Score: 7, Reason: "Most populous Springfield"},
					{Location: "Springfield, Missouri", Score: 5, Reason: "Also plausible"},
				},
				Selected:  "Springfield, Illinois",
				Reasoning: "Higher confidence score",
			},
		},
		{
			name: "missing selection falls back to first candidate",
			input: `POSSIBLE LOCATION: Oslo
SCORE: 9
REASON: Only match`,
			expected: totResult{
				Candidates: []core.Candidate{{Location: "Oslo", Score: 9, Reason: "Only match"}},
				Selected:   "Oslo",
				Reasoning:  "Only one location was identified.",
			},
		},
		{
			name: "multiple candidates no selection",
			input: `POSSIBLE LOCATION: Athens
SCORE: 6
REASON: Greek capital
POSSIBLE LOCATION: Athens, Georgia
SCORE: 4
REASON: US city`,
			expected: totResult{
				Candidates: []core.Candidate{
					{Location: "Athens", Score: 6, Reason: "Greek capital"},
					{Location: "Athens, Georgia", Score: 4, Reason: "US city"},
				},
				Selected:  "Athens",
				Reasoning: "No explicit selection was made; the first candidate was used.",
			},
		},
		{
			name:    "no candidates",
			input:   "I could not identify any locations.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseToT(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("parseToT() error = %v, want ErrMalformed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseToT() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseToT() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestParseReflection(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected core.Reflection
		wantErr  bool
	}{
		{
			name: "sufficient",
			input: `SUFFICIENT: yes
MISSING_INFORMATION: none
NOTES: All good
SUGGESTED_ACTION: none
ALTERNATIVE_LOCATION: none`,
			expected: core.Reflection{Sufficient: true, Notes: "All good"},
		},
		{
			name: "alternative suggested",
			input: `SUFFICIENT: no
MISSING_INFORMATION: weather data, background
NOTES: The location looks misspelled
SUGGESTED_ACTION: try_alternative_location
ALTERNATIVE_LOCATION: Paris`,
			expected: core.Reflection{
				Sufficient:          false,
				Missing:             []string{"weather data", "background"},
				Notes:               "The location looks misspelled",
				SuggestedAction:     "try_alternative_location",
				AlternativeLocation: "Paris",
			},
		},
		{
			name:    "no sufficient line",
			input:   "Everything seems fine.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseReflection(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("parseReflection() error = %v, want ErrMalformed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseReflection() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseReflection() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}
