package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/wearbot/internal/core"
	"github.com/sandevgo/wearbot/pkg/log"
)

const (
	WeatherSourceURL = "https://openweathermap.org/"

	// Encyclopedia extracts are short by construction, but a disambiguation
	// page can still return a wall of text.
	maxSummaryTokens = 400
)

const baseSystemPrompt = `You are a helpful weather assistant.
Create a friendly and informative response about the weather and location based on the provided data.

Include:
1. Current weather conditions
2. Temperature and how it feels
3. Humidity
4. A brief description of the location (if available)

IMPORTANT: Always include source attribution at the end of your response.
Format it as: "Sources: [Weather data from OpenWeatherMap](url), [Location info from Wikipedia](url)"`

var modeInstructions = map[core.Mode]string{
	core.ModeReact: `Consider the reflection information in your response. If there were issues with the data,
you may want to acknowledge them subtly.`,
	core.ModeCoT: `Include a brief mention of the step-by-step reasoning process that led to identifying
the location, but focus primarily on providing weather information.`,
	core.ModeToT: `If there were multiple possible interpretations of the location,
briefly mention this and explain why you selected this particular location.`,
}

// Request carries everything the composer folds into the final reply.
type Request struct {
	Query      string
	Location   string
	Snapshot   core.WeatherSnapshot
	Wiki       core.WikiSnippet
	HasWiki    bool
	Extraction core.Extraction
	Notes      string
}

// Composer merges fetched data and extraction metadata into one reply.
type Composer struct {
	ai core.AIProvider
}

func NewComposer(ai core.AIProvider) *Composer {
	return &Composer{ai: ai}
}

// Compose runs one completion call with a style-specific instruction block.
// If the call fails, the deterministic fallback template takes over; the
// reply always ends with source attribution either way.
func (c *Composer) Compose(ctx context.Context, req Request) string {
	logger := log.FromCtx(ctx)

	system := baseSystemPrompt
	if instr, ok := modeInstructions[req.Extraction.Mode]; ok {
		system += "\n\n" + instr
	}

	msg, err := c.ai.Chat(ctx, []core.Message{
		{Role: core.RoleSystem, Content: system},
		{Role: core.RoleUser, Content: c.buildContext(req)},
	})
	if err != nil || strings.TrimSpace(msg.Content) == "" {
		logger.Warn().Err(err).Msg("composition call failed, using fallback template")
		return c.Fallback(req)
	}

	logger.Debug().Str("raw", msg.Content).Msg("composition response")
	return c.ensureSources(msg.Content, req)
}

func (c *Composer) buildContext(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Query: %s\n\n", req.Query)
	fmt.Fprintf(&b, "Weather data for %s:\n", req.Location)
	fmt.Fprintf(&b, "- Temperature: %.1f°C\n", req.Snapshot.Temperature)
	fmt.Fprintf(&b, "- Feels like: %.1f°C\n", req.Snapshot.FeelsLike)
	fmt.Fprintf(&b, "- Humidity: %d%%\n", req.Snapshot.Humidity)
	fmt.Fprintf(&b, "- Conditions: %s\n\n", req.Snapshot.Condition)

	if req.HasWiki {
		fmt.Fprintf(&b, "Location information:\n%s\n\n", truncateTokens(req.Wiki.Summary, maxSummaryTokens))
	} else {
		b.WriteString("Location information:\nNo information available\n\n")
	}

	fmt.Fprintf(&b, "Sources:\n- Weather: %s\n", WeatherSourceURL)
	if req.HasWiki {
		fmt.Fprintf(&b, "- Location: %s\n", req.Wiki.URL)
	}
	b.WriteString("\n")

	switch req.Extraction.Mode {
	case core.ModeCoT:
		if len(req.Extraction.Steps) > 0 {
			b.WriteString("Reasoning steps:\n")
			for _, step := range req.Extraction.Steps {
				fmt.Fprintf(&b, "- %s\n", step)
			}
		}
	case core.ModeToT:
		if len(req.Extraction.Candidates) > 1 {
			b.WriteString("Alternative locations considered:\n")
			for _, cand := range req.Extraction.Candidates {
				fmt.Fprintf(&b, "- %s: Score %d/100\n", cand.Location, cand.Score)
			}
		} else {
			b.WriteString("Alternative locations considered:\nNo alternative locations considered\n")
		}
		if req.Extraction.Reasoning != "" {
			fmt.Fprintf(&b, "Selection reasoning: %s\n", req.Extraction.Reasoning)
		}
	default:
		if req.Notes != "" {
			fmt.Fprintf(&b, "Reflection notes: %s\n", req.Notes)
		}
	}

	return b.String()
}

// Fallback is the deterministic template used when the model is unavailable:
// plain string interpolation of the raw fields, no LLM involvement.
func (c *Composer) Fallback(req Request) string {
	var lead string
	switch req.Extraction.Mode {
	case core.ModeCoT:
		lead = fmt.Sprintf("Through step-by-step reasoning, I identified your location as %s. Currently, the temperature is", req.Location)
	case core.ModeToT:
		lead = fmt.Sprintf("After considering multiple possible locations, I identified %s as the most likely. The current temperature is", req.Location)
	default:
		lead = fmt.Sprintf("In %s, the current temperature is", req.Location)
	}

	body := fmt.Sprintf("%s %s°C, feels like %s°C, with %s and %d%% humidity.",
		lead,
		formatDegrees(req.Snapshot.Temperature),
		formatDegrees(req.Snapshot.FeelsLike),
		req.Snapshot.Condition,
		req.Snapshot.Humidity,
	)

	return body + "\n\n" + c.sourcesLine(req)
}

// ensureSources appends the attribution line when the model forgot it.
func (c *Composer) ensureSources(reply string, req Request) string {
	if strings.Contains(reply, "openweathermap.org") {
		return reply
	}
	return strings.TrimRight(reply, "\n") + "\n\n" + c.sourcesLine(req)
}

func (c *Composer) sourcesLine(req Request) string {
	line := fmt.Sprintf("Sources: [Weather data from OpenWeatherMap](%s)", WeatherSourceURL)
	if req.HasWiki && req.Wiki.URL != "" {
		line += fmt.Sprintf(", [Location info from Wikipedia](%s)", req.Wiki.URL)
	}
	return line
}

// formatDegrees renders 20.0 as "20" and 19.5 as "19.5", matching how the
// upstream API's numbers read when quoted back to the user.
func formatDegrees(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
