package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sandevgo/wearbot/internal/config"
	"github.com/sandevgo/wearbot/internal/core"
	"github.com/sandevgo/wearbot/internal/service/compose"
	"github.com/sandevgo/wearbot/internal/service/reason"
)

type aiStep struct {
	reply string
	err   error
}

// scriptedAI replays a fixed sequence of completions. Calls past the end of
// the script fail, which routes every stage into its deterministic fallback.
type scriptedAI struct {
	steps []aiStep
	calls int
}

func (s *scriptedAI) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	i := s.calls
	s.calls++
	if i >= len(s.steps) {
		return core.Message{}, errors.New("model unavailable")
	}
	if s.steps[i].err != nil {
		return core.Message{}, s.steps[i].err
	}
	return core.Message{Role: core.RoleAssistant, Content: s.steps[i].reply}, nil
}

type fakeWeather struct {
	snapshot  core.WeatherSnapshot
	err       error
	locations []string
}

func (f *fakeWeather) Current(ctx context.Context, location string) (core.WeatherSnapshot, error) {
	f.locations = append(f.locations, location)
	if f.err != nil {
		return core.WeatherSnapshot{}, f.err
	}
	return f.snapshot, nil
}

type fakeWiki struct {
	snippet core.WikiSnippet
	err     error
	calls   int
}

func (f *fakeWiki) Lookup(ctx context.Context, location string) (core.WikiSnippet, error) {
	f.calls++
	if f.err != nil {
		return core.WikiSnippet{}, f.err
	}
	return f.snippet, nil
}

func newTestAgent(ai core.AIProvider, weather core.WeatherProvider, wiki core.WikiProvider) *Agent {
	return NewAgent(
		&config.AppConfig{TurnHistoryLimit: 10},
		reason.NewExtractor(ai),
		weather,
		wiki,
		compose.NewComposer(ai),
		compose.NewAdvisor(ai),
		nil,
	)
}

func clearSnapshot() core.WeatherSnapshot {
	return core.WeatherSnapshot{Temperature: 20, FeelsLike: 18, Humidity: 50, Condition: "clear"}
}

func TestRunFullFallbackPipeline(t *testing.T) {
	// Model down everywhere: direct extraction, sufficient-by-default
	// reflection and the deterministic composition template carry the turn.
	ai := &scriptedAI{}
	weather := &fakeWeather{snapshot: clearSnapshot()}
	wiki := &fakeWiki{snippet: core.WikiSnippet{Summary: "Paris is the capital of France.", URL: "https://en.wikipedia.org/wiki/Paris"}}
	ag := newTestAgent(ai, weather, wiki)

	got := ag.Run(context.Background(), "test", core.ModeReact, "What's the weather in Paris?")

	if !strings.Contains(got, "In paris, the current temperature is 20°C") {
		t.Errorf("Run() = %q, want fallback weather sentence", got)
	}
	if len(weather.locations) != 1 || weather.locations[0] != "paris" {
		t.Errorf("weather fetched for %v, want [paris]", weather.locations)
	}
}

func TestRunWeatherErrorSurfacesVerbatim(t *testing.T) {
	msg := `Weather API error: http 404 for "atlantis"`
	weather := &fakeWeather{err: core.NewUpstreamError("weather", msg, nil)}
	ag := newTestAgent(&scriptedAI{}, weather, &fakeWiki{})

	got := ag.Run(context.Background(), "test", core.ModeReact, "weather in Atlantis")

	want := "Sorry, I couldn't get weather information: " + msg
	if got != want {
		t.Errorf("Run() = %q, want %q", got, want)
	}
}

func TestRunEmptyQuerySkipsExternalCalls(t *testing.T) {
	ai := &scriptedAI{}
	weather := &fakeWeather{snapshot: clearSnapshot()}
	wiki := &fakeWiki{}
	ag := newTestAgent(ai, weather, wiki)

	got := ag.Run(context.Background(), "test", core.ModeReact, "   ")

	if got != "I couldn't identify a location in your query. Please specify a city or place." {
		t.Errorf("Run() = %q", got)
	}
	if ai.calls != 0 || len(weather.locations) != 0 || wiki.calls != 0 {
		t.Errorf("external calls made for empty query: ai=%d weather=%d wiki=%d",
			ai.calls, len(weather.locations), wiki.calls)
	}
}

func TestRunEmptyQueryMessageVariesByMode(t *testing.T) {
	ag := newTestAgent(&scriptedAI{}, &fakeWeather{}, &fakeWiki{})

	tests := []struct {
		mode core.Mode
		want string
	}{
		{core.ModeCoT, "After careful consideration"},
		{core.ModeToT, "After exploring multiple possibilities"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := ag.Run(context.Background(), "test", tt.mode, "")
			if !strings.Contains(got, tt.want) {
				t.Errorf("Run() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestRunWikiFailureNotSurfaced(t *testing.T) {
	weather := &fakeWeather{snapshot: clearSnapshot()}
	wiki := &fakeWiki{err: core.NewUpstreamError("wiki", "No Wikipedia information found for paris", nil)}
	ag := newTestAgent(&scriptedAI{}, weather, wiki)

	got := ag.Run(context.Background(), "test", core.ModeReact, "weather in Paris")

	if !strings.Contains(got, "20°C") {
		t.Errorf("Run() = %q, want weather figures despite wiki failure", got)
	}
	if strings.Contains(got, "Wikipedia information") || strings.Contains(got, "wikipedia.org") {
		t.Errorf("Run() = %q, wiki failure leaked into reply", got)
	}
}

func TestRunReflectionRetriesAtMostOnce(t *testing.T) {
	// Extraction fails (direct fallback), reflection suggests an alternative
	// location once, composition fails (deterministic template). The refetch
	// must happen exactly once with the suggested location.
	ai := &scriptedAI{steps: []aiStep{
		{err: errors.New("extract down")},
		{reply: "SUFFICIENT: no\nMISSING_INFORMATION: weather data\nSUGGESTED_ACTION: try_alternative_location\nALTERNATIVE_LOCATION: Paris"},
		{err: errors.New("compose down")},
	}}
	weather := &fakeWeather{snapshot: clearSnapshot()}
	wiki := &fakeWiki{err: errors.New("no article")}
	ag := newTestAgent(ai, weather, wiki)

	got := ag.Run(context.Background(), "test", core.ModeReact, "weather in Atlantida")

	if len(weather.locations) != 2 {
		t.Fatalf("weather fetched %d times (%v), want 2", len(weather.locations), weather.locations)
	}
	if weather.locations[0] != "atlantida" || weather.locations[1] != "Paris" {
		t.Errorf("weather locations = %v, want [atlantida Paris]", weather.locations)
	}
	if ai.calls != 3 {
		t.Errorf("ai calls = %d, want 3 (extract, reflect, compose)", ai.calls)
	}
	if !strings.Contains(got, "In Paris, the current temperature is") {
		t.Errorf("Run() = %q, want reply for alternative location", got)
	}
}

func TestRunSkipsReflectionOutsideReact(t *testing.T) {
	ai := &scriptedAI{steps: []aiStep{
		{err: errors.New("extract down")},
		{err: errors.New("compose down")},
	}}
	weather := &fakeWeather{snapshot: clearSnapshot()}
	ag := newTestAgent(ai, weather, &fakeWiki{err: errors.New("no article")})

	ag.Run(context.Background(), "test", core.ModeCoT, "weather in Oslo")

	// extract + compose only, no reflection call
	if ai.calls != 2 {
		t.Errorf("ai calls = %d, want 2", ai.calls)
	}
}

func TestRecommendWithoutHistoryUsesDefaults(t *testing.T) {
	ag := newTestAgent(&scriptedAI{}, &fakeWeather{}, &fakeWiki{})

	got := ag.Recommend(context.Background())
	if !strings.Contains(got, "20°C") || !strings.Contains(got, "unknown") {
		t.Errorf("Recommend() = %q, want neutral defaults", got)
	}
}

func TestRecommendUsesLastSnapshot(t *testing.T) {
	weather := &fakeWeather{snapshot: core.WeatherSnapshot{Temperature: 5, FeelsLike: 2, Humidity: 80, Condition: "snow"}}
	ag := newTestAgent(&scriptedAI{}, weather, &fakeWiki{err: errors.New("no article")})

	ag.Run(context.Background(), "test", core.ModeReact, "weather in Tromso")
	got := ag.Recommend(context.Background())

	if !strings.Contains(got, "5°C") || !strings.Contains(got, "snow") {
		t.Errorf("Recommend() = %q, want last snapshot figures", got)
	}
}
