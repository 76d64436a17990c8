package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/wearbot/internal/core"
	"github.com/sandevgo/wearbot/pkg/log"
)

const clothingSystemPrompt = `You are a helpful fashion advisor that recommends appropriate clothing based on weather conditions.
Provide specific, practical clothing suggestions that are appropriate for the weather.
Consider temperature, humidity, weather conditions, and location when making your recommendation.

For different temperature ranges:
- Very Hot (>30°C): Very light clothing, sun protection
- Hot (25-30°C): Light summer clothing
- Warm (20-25°C): Light layers, maybe a light jacket in the evening
- Mild (15-20°C): Light layers, light jacket or sweater
- Cool (10-15°C): Jacket, light layers, possibly a scarf
- Cold (5-10°C): Warm jacket, sweater, scarf, maybe gloves
- Very Cold (0-5°C): Winter coat, hat, gloves, scarf, warm layers
- Freezing (<0°C): Heavy winter clothing, thermal layers, winter accessories

Also consider weather conditions:
- Rain: Waterproof jacket, umbrella, waterproof footwear
- Snow: Waterproof and insulated clothing, boots with good traction
- Wind: Windproof outer layer, secure hat
- Sun: Sunglasses, hat, sunscreen

Provide recommendations for:
1. Top/Upper body clothing
2. Bottom/Lower body clothing
3. Footwear
4. Accessories (if relevant)
5. Extra items to carry based on conditions

Be conversational and friendly in your response. Mention the weather conditions you're basing your recommendations on.`

// Advisor turns a weather snapshot into a clothing recommendation, with a
// temperature-banded template standing in when the model call fails.
type Advisor struct {
	ai core.AIProvider
}

func NewAdvisor(ai core.AIProvider) *Advisor {
	return &Advisor{ai: ai}
}

func (a *Advisor) Recommend(ctx context.Context, snapshot core.WeatherSnapshot, location, timePeriod string) string {
	logger := log.FromCtx(ctx)
	if timePeriod == "" {
		timePeriod = "current"
	}

	user := fmt.Sprintf(`Location: %s
Time period: %s
Weather conditions:
- Temperature: %.1f°C
- Feels like: %.1f°C
- Humidity: %d%%
- Conditions: %s

What clothing would you recommend for this weather?`,
		location, timePeriod,
		snapshot.Temperature, snapshot.FeelsLike, snapshot.Humidity, snapshot.Condition)

	msg, err := a.ai.Chat(ctx, []core.Message{
		{Role: core.RoleSystem, Content: clothingSystemPrompt},
		{Role: core.RoleUser, Content: user},
	})
	if err != nil || strings.TrimSpace(msg.Content) == "" {
		logger.Warn().Err(err).Msg("clothing call failed, using fallback recommendation")
		return FallbackRecommendation(snapshot.Temperature, snapshot.Condition)
	}

	logger.Debug().Str("raw", msg.Content).Msg("clothing response")
	return msg.Content
}

// FallbackRecommendation maps temperature bands and conditions onto a fixed
// sentence, no model involved.
func FallbackRecommendation(temperature float64, conditions string) string {
	var clothing string
	switch {
	case temperature > 25:
		clothing = "light clothing such as t-shirts, shorts or light dresses"
	case temperature > 15:
		clothing = "medium-weight clothing such as long sleeves, light jackets, or jeans"
	case temperature > 5:
		clothing = "warm clothing such as sweaters, jackets, and long pants"
	default:
		clothing = "heavy winter clothing including a warm coat, scarf, gloves, and hat"
	}

	lower := strings.ToLower(conditions)
	switch {
	case strings.Contains(lower, "rain") || strings.Contains(lower, "drizzle"):
		clothing += ". Don't forget a waterproof jacket or umbrella"
	case strings.Contains(lower, "snow"):
		clothing += ". Make sure to wear waterproof boots and a warm hat"
	case strings.Contains(lower, "clear") && temperature > 20:
		clothing += ". Consider wearing sunglasses and applying sunscreen"
	}

	return fmt.Sprintf("Based on the current temperature of %s°C with %s, I recommend wearing %s.",
		formatDegrees(temperature), conditions, clothing)
}
