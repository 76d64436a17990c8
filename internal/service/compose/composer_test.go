package compose

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sandevgo/wearbot/internal/core"
)

type fakeAI struct {
	reply string
	err   error
}

func (f *fakeAI) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	if f.err != nil {
		return core.Message{}, f.err
	}
	return core.Message{Role: core.RoleAssistant, Content: f.reply}, nil
}

func parisRequest(mode core.Mode) Request {
	return Request{
		Query:    "What's the weather in Paris?",
		Location: "Paris",
		Snapshot: core.WeatherSnapshot{
			Temperature: 20,
			FeelsLike:   18,
			Humidity:    50,
			Condition:   "clear",
		},
		Extraction: core.Extraction{Location: "Paris", Mode: mode},
	}
}

func TestFallbackContainsWeatherFigures(t *testing.T) {
	c := NewComposer(&fakeAI{})
	got := c.Fallback(parisRequest(core.ModeReact))

	for _, want := range []string{"Paris", "20°C", "18°C", "clear", "50%", WeatherSourceURL} {
		if !strings.Contains(got, want) {
			t.Errorf("Fallback() missing %q in %q", want, got)
		}
	}
}

func TestFallbackLeadVariesByMode(t *testing.T) {
	c := NewComposer(&fakeAI{})

	tests := []struct {
		mode core.Mode
		want string
	}{
		{core.ModeReact, "In Paris, the current temperature is"},
		{core.ModeCoT, "Through step-by-step reasoning"},
		{core.ModeToT, "After considering multiple possible locations"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := c.Fallback(parisRequest(tt.mode))
			if !strings.Contains(got, tt.want) {
				t.Errorf("Fallback() = %q, want lead %q", got, tt.want)
			}
		})
	}
}

func TestComposeUsesFallbackOnModelError(t *testing.T) {
	c := NewComposer(&fakeAI{err: errors.New("timeout")})
	got := c.Compose(context.Background(), parisRequest(core.ModeReact))

	if !strings.Contains(got, "In Paris, the current temperature is 20°C") {
		t.Errorf("Compose() = %q, want fallback template", got)
	}
}

func TestComposeUsesFallbackOnEmptyReply(t *testing.T) {
	c := NewComposer(&fakeAI{reply: "  \n"})
	got := c.Compose(context.Background(), parisRequest(core.ModeReact))

	if !strings.Contains(got, "20°C") {
		t.Errorf("Compose() = %q, want fallback template", got)
	}
}

func TestComposeAppendsMissingSources(t *testing.T) {
	c := NewComposer(&fakeAI{reply: "It is a lovely clear day in Paris at 20°C."})
	got := c.Compose(context.Background(), parisRequest(core.ModeReact))

	if !strings.Contains(got, WeatherSourceURL) {
		t.Errorf("Compose() = %q, want appended source attribution", got)
	}
}

func TestComposeKeepsModelSources(t *testing.T) {
	reply := "Nice weather.\n\nSources: [Weather data from OpenWeatherMap](https://openweathermap.org/)"
	c := NewComposer(&fakeAI{reply: reply})
	got := c.Compose(context.Background(), parisRequest(core.ModeReact))

	if got != reply {
		t.Errorf("Compose() = %q, want model reply untouched", got)
	}
	if strings.Count(got, "openweathermap.org") != 1 {
		t.Errorf("Compose() duplicated source attribution: %q", got)
	}
}

func TestSourcesLineIncludesWiki(t *testing.T) {
	c := NewComposer(&fakeAI{err: errors.New("down")})
	req := parisRequest(core.ModeReact)
	req.HasWiki = true
	req.Wiki = core.WikiSnippet{
		Summary: "Paris is the capital of France.",
		URL:     "https://en.wikipedia.org/wiki/Paris",
	}

	got := c.Compose(context.Background(), req)
	if !strings.Contains(got, "https://en.wikipedia.org/wiki/Paris") {
		t.Errorf("Compose() = %q, want Wikipedia source", got)
	}
}

func TestFormatDegrees(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{20, "20"},
		{19.5, "19.5"},
		{-3, "-3"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := formatDegrees(tt.in); got != tt.want {
			t.Errorf("formatDegrees(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
