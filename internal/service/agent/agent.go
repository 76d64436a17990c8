package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sandevgo/wearbot/internal/config"
	"github.com/sandevgo/wearbot/internal/core"
	"github.com/sandevgo/wearbot/internal/service/compose"
	"github.com/sandevgo/wearbot/internal/service/reason"
	"github.com/sandevgo/wearbot/pkg/log"
)

// Agent sequences extraction, data fetching, optional reflection and
// composition for each query. It always answers with a user-facing string;
// upstream failures degrade into fixed messages instead of errors.
type Agent struct {
	cfg       *config.AppConfig
	extractor *reason.Extractor
	weather   core.WeatherProvider
	wiki      core.WikiProvider
	composer  *compose.Composer
	advisor   *compose.Advisor
	turns     core.TurnsRepository

	// Scratch state bridging the last completed query into a clothing
	// follow-up. Overwritten on every query.
	mu           sync.Mutex
	lastSnapshot *core.WeatherSnapshot
	lastLocation string
}

func NewAgent(
	cfg *config.AppConfig,
	extractor *reason.Extractor,
	weather core.WeatherProvider,
	wiki core.WikiProvider,
	composer *compose.Composer,
	advisor *compose.Advisor,
	turns core.TurnsRepository,
) *Agent {
	return &Agent{
		cfg:       cfg,
		extractor: extractor,
		weather:   weather,
		wiki:      wiki,
		composer:  composer,
		advisor:   advisor,
		turns:     turns,
	}
}

// Run processes one query under the given reasoning mode.
func (a *Agent) Run(ctx context.Context, sessionID string, mode core.Mode, query string) string {
	logger := log.FromCtx(ctx)

	// An empty query can never hold a location; skip every external call.
	if isBlank(query) {
		return noLocationMessage(mode)
	}

	extraction := a.extractor.Extract(ctx, mode, query)
	if extraction.Location == "" {
		logger.Info().Str("query", query).Msg("no location extracted")
		return noLocationMessage(mode)
	}
	logger.Info().
		Str("mode", string(mode)).
		Str("location", extraction.Location).
		Msg("location extracted")

	location := extraction.Location

	snapshot, weatherOK, errReply := a.fetchWeather(ctx, extraction, location)
	if errReply != "" {
		return errReply
	}
	wiki, wikiOK := a.fetchWiki(ctx, extraction, location)

	var notes string
	if mode == core.ModeReact {
		reflection := a.reflect(ctx, query, location, weatherOK, wikiOK)
		notes = reflection.Notes

		// One alternative-location refetch at most, never looped.
		if !reflection.Sufficient &&
			reflection.SuggestedAction == "try_alternative_location" &&
			reflection.AlternativeLocation != "" {
			alt := reflection.AlternativeLocation
			logger.Info().Str("alternative", alt).Msg("reflection suggested alternative location")

			snapshot, weatherOK, errReply = a.fetchWeather(ctx, extraction, alt)
			if errReply != "" {
				return errReply
			}
			wiki, wikiOK = a.fetchWiki(ctx, extraction, alt)
			location = alt
		}
	}

	if !weatherOK {
		return fmt.Sprintf("I couldn't find weather information for %s.", location)
	}

	reply := a.composer.Compose(ctx, compose.Request{
		Query:      query,
		Location:   location,
		Snapshot:   snapshot,
		Wiki:       wiki,
		HasWiki:    wikiOK,
		Extraction: extraction,
		Notes:      notes,
	})

	a.mu.Lock()
	snap := snapshot
	a.lastSnapshot = &snap
	a.lastLocation = location
	a.mu.Unlock()

	if a.turns != nil {
		turn := core.Turn{
			SessionID: sessionID,
			Mode:      mode,
			Query:     query,
			Location:  location,
			Reply:     reply,
		}
		if err := a.turns.AddTurn(ctx, turn); err != nil {
			logger.Error().Err(err).Msg("failed to persist turn")
		}
	}

	return reply
}

// Recommend produces a clothing suggestion from the last fetched snapshot.
// Without a prior successful query it falls back to neutral assumptions.
func (a *Agent) Recommend(ctx context.Context) string {
	a.mu.Lock()
	snapshot := a.lastSnapshot
	location := a.lastLocation
	a.mu.Unlock()

	if snapshot == nil {
		snapshot = &core.WeatherSnapshot{
			Temperature: 20,
			FeelsLike:   20,
			Humidity:    50,
			Condition:   "unknown",
		}
	}
	if location == "" {
		location = "the provided location"
	}

	return a.advisor.Recommend(ctx, *snapshot, location, "current")
}

// LastTurns returns the most recent completed exchanges for a session.
func (a *Agent) LastTurns(ctx context.Context, sessionID string) ([]core.Turn, error) {
	if a.turns == nil {
		return nil, nil
	}
	return a.turns.GetTurns(ctx, sessionID, a.cfg.TurnHistoryLimit)
}

// Trace runs the single-shot pipeline and dumps every intermediate step as
// indented JSON. Debug aid, not part of the normal flow.
func (a *Agent) Trace(ctx context.Context, query string) string {
	extraction := a.extractor.Extract(ctx, core.ModeReact, query)

	trace := map[string]any{
		"query":    query,
		"planning": extraction,
	}

	if extraction.Location != "" {
		snapshot, weatherOK, _ := a.fetchWeather(ctx, extraction, extraction.Location)
		wiki, wikiOK := a.fetchWiki(ctx, extraction, extraction.Location)

		actions := map[string]any{
			"location_extracted": extraction.Location,
			"weather_available":  weatherOK,
			"wiki_available":     wikiOK,
		}
		if weatherOK {
			actions["weather_data"] = snapshot
		}
		if wikiOK {
			actions["wiki_data"] = wiki
		}
		trace["actions"] = actions

		if weatherOK {
			trace["reflection"] = a.reflect(ctx, query, extraction.Location, weatherOK, wikiOK)
		}
	}

	data, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return fmt.Sprintf("trace failed: %v", err)
	}
	return string(data)
}

// fetchWeather returns the snapshot, whether it is usable, and a terminal
// user-facing reply when the fetch failed hard. A query that does not need
// weather simply reports an unusable snapshot.
func (a *Agent) fetchWeather(ctx context.Context, extraction core.Extraction, location string) (core.WeatherSnapshot, bool, string) {
	if !extraction.NeedsWeather {
		return core.WeatherSnapshot{}, false, ""
	}

	snapshot, err := a.weather.Current(ctx, location)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("location", location).Msg("weather fetch failed")

		var upstream *core.UpstreamError
		if errors.As(err, &upstream) {
			return core.WeatherSnapshot{}, false,
				fmt.Sprintf("Sorry, I couldn't get weather information: %s", upstream.Message)
		}
		return core.WeatherSnapshot{}, false,
			fmt.Sprintf("Sorry, I couldn't get weather information: %v", err)
	}
	return snapshot, true, ""
}

// fetchWiki never surfaces its failure to the user; the reply just omits
// the background section.
func (a *Agent) fetchWiki(ctx context.Context, extraction core.Extraction, location string) (core.WikiSnippet, bool) {
	if !extraction.NeedsWikiInfo {
		return core.WikiSnippet{}, false
	}

	snippet, err := a.wiki.Lookup(ctx, location)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("location", location).Msg("wiki lookup failed, proceeding with weather only")
		return core.WikiSnippet{}, false
	}
	return snippet, true
}

func (a *Agent) reflect(ctx context.Context, query, location string, weatherOK, wikiOK bool) core.Reflection {
	summary, err := json.Marshal(map[string]any{
		"query":                   query,
		"location":                location,
		"weather_available":       weatherOK,
		"location_info_available": wikiOK,
	})
	if err != nil {
		return core.Reflection{Sufficient: true}
	}
	return a.extractor.Reflect(ctx, string(summary))
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

func noLocationMessage(mode core.Mode) string {
	switch mode {
	case core.ModeCoT:
		return "After careful consideration, I couldn't identify a location in your query. Please specify a city or place."
	case core.ModeToT:
		return "After exploring multiple possibilities, I couldn't determine a location from your query. Please specify a city or place."
	default:
		return "I couldn't identify a location in your query. Please specify a city or place."
	}
}
