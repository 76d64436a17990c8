package compose

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sandevgo/wearbot/internal/core"
)

func TestFallbackRecommendation(t *testing.T) {
	tests := []struct {
		name        string
		temperature float64
		conditions  string
		want        []string
	}{
		{
			name:        "hot",
			temperature: 28,
			conditions:  "sunny",
			want:        []string{"28°C", "light clothing"},
		},
		{
			name:        "mild",
			temperature: 18,
			conditions:  "cloudy",
			want:        []string{"medium-weight clothing"},
		},
		{
			name:        "cool",
			temperature: 8,
			conditions:  "overcast",
			want:        []string{"warm clothing"},
		},
		{
			name:        "freezing",
			temperature: -2,
			conditions:  "snow",
			want:        []string{"heavy winter clothing", "waterproof boots"},
		},
		{
			name:        "rain adds waterproofs",
			temperature: 12,
			conditions:  "light rain",
			want:        []string{"waterproof jacket or umbrella"},
		},
		{
			name:        "warm and clear adds sun protection",
			temperature: 24,
			conditions:  "clear sky",
			want:        []string{"sunglasses"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackRecommendation(tt.temperature, tt.conditions)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("FallbackRecommendation(%v, %q) = %q, missing %q",
						tt.temperature, tt.conditions, got, w)
				}
			}
		})
	}
}

func TestRecommendFallsBackOnModelError(t *testing.T) {
	a := NewAdvisor(&fakeAI{err: errors.New("unavailable")})
	snapshot := core.WeatherSnapshot{Temperature: 20, FeelsLike: 18, Humidity: 50, Condition: "clear"}

	got := a.Recommend(context.Background(), snapshot, "Paris", "current")
	if !strings.Contains(got, "Based on the current temperature of 20°C with clear") {
		t.Errorf("Recommend() = %q, want fallback sentence", got)
	}
}

func TestRecommendUsesModelReply(t *testing.T) {
	a := NewAdvisor(&fakeAI{reply: "Wear a light jacket and jeans."})
	snapshot := core.WeatherSnapshot{Temperature: 18, Condition: "cloudy"}

	got := a.Recommend(context.Background(), snapshot, "Oslo", "")
	if got != "Wear a light jacket and jeans." {
		t.Errorf("Recommend() = %q", got)
	}
}
