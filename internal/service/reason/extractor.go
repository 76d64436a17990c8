package reason

import (
	"context"
	"errors"

	"github.com/sandevgo/wearbot/internal/core"
	"github.com/sandevgo/wearbot/pkg/log"
)

// Extractor turns a free-text query into a location plus strategy-dependent
// metadata. The LLM-guided strategies degrade to DirectExtract when the model
// call fails, and to an empty location when even that yields nothing usable.
type Extractor struct {
	ai core.AIProvider
}

func NewExtractor(ai core.AIProvider) *Extractor {
	return &Extractor{ai: ai}
}

func (e *Extractor) Extract(ctx context.Context, mode core.Mode, query string) core.Extraction {
	switch mode {
	case core.ModeCoT:
		return e.extractCoT(ctx, query)
	case core.ModeToT:
		return e.extractToT(ctx, query)
	default:
		return e.extractPlan(ctx, query)
	}
}

// extractPlan is the single-shot strategy: one planning call that returns
// the location together with intent flags.
func (e *Extractor) extractPlan(ctx context.Context, query string) core.Extraction {
	logger := log.FromCtx(ctx)

	reply, err := e.chat(ctx, planSystemPrompt, query)
	if err != nil {
		logger.Warn().Err(err).Msg("planning call failed, falling back to direct extraction")
		return e.directFallback(query, core.ModeReact)
	}
	logger.Debug().Str("raw", reply).Msg("planning response")

	p, err := parsePlan(reply)
	if err != nil {
		logger.Warn().Err(err).Msg("planning output unparseable, falling back to direct extraction")
		return e.directFallback(query, core.ModeReact)
	}

	return core.Extraction{
		Location:      p.Location,
		Mode:          core.ModeReact,
		NeedsWeather:  p.NeedsWeather,
		NeedsWikiInfo: p.NeedsWikiInfo,
		TimePeriod:    p.TimePeriod,
		Aspects:       p.Aspects,
	}
}

func (e *Extractor) extractCoT(ctx context.Context, query string) core.Extraction {
	logger := log.FromCtx(ctx)

	reply, err := e.chat(ctx, cotSystemPrompt, query)
	if err != nil {
		logger.Warn().Err(err).Msg("reasoning call failed, falling back to direct extraction")
		ex := e.directFallback(query, core.ModeCoT)
		ex.Steps = []string{"Simple extraction of location from query"}
		return ex
	}
	logger.Debug().Str("raw", reply).Msg("cot response")

	r, err := parseCoT(reply)
	if err != nil {
		logger.Warn().Err(err).Msg("cot output unparseable, falling back to direct extraction")
		ex := e.directFallback(query, core.ModeCoT)
		ex.Steps = []string{"Simple extraction of location from query"}
		return ex
	}

	if r.Location == "" {
		// The model reasoned but concluded nothing; try the query itself.
		r.Location = DirectExtract(query)
	}

	return core.Extraction{
		Location:      r.Location,
		Mode:          core.ModeCoT,
		NeedsWeather:  true,
		NeedsWikiInfo: true,
		TimePeriod:    "current",
		Steps:         r.Steps,
	}
}

func (e *Extractor) extractToT(ctx context.Context, query string) core.Extraction {
	logger := log.FromCtx(ctx)

	reply, err := e.chat(ctx, totSystemPrompt, query)
	if err != nil {
		logger.Warn().Err(err).Msg("candidate call failed, falling back to direct extraction")
		ex := e.directFallback(query, core.ModeToT)
		ex.Reasoning = "Simple extraction of location from query"
		if ex.Location != "" {
			ex.Candidates = []core.Candidate{{Location: ex.Location}}
		}
		return ex
	}
	logger.Debug().Str("raw", reply).Msg("tot response")

	r, err := parseToT(reply)
	if err != nil {
		logger.Warn().Err(err).Msg("tot output unparseable, falling back to direct extraction")
		ex := e.directFallback(query, core.ModeToT)
		ex.Reasoning = "Simple extraction of location from query"
		if ex.Location != "" {
			ex.Candidates = []core.Candidate{{Location: ex.Location}}
		}
		return ex
	}

	return core.Extraction{
		Location:      r.Selected,
		Mode:          core.ModeToT,
		NeedsWeather:  true,
		NeedsWikiInfo: true,
		TimePeriod:    "current",
		Candidates:    r.Candidates,
		Reasoning:     r.Reasoning,
	}
}

// Reflect asks the model whether the fetched data suffices to answer. Any
// call or parse failure defaults to "sufficient" so reflection can never
// block a reply.
func (e *Extractor) Reflect(ctx context.Context, summary string) core.Reflection {
	logger := log.FromCtx(ctx)

	reply, err := e.chat(ctx, reflectionSystemPrompt, summary)
	if err != nil {
		logger.Warn().Err(err).Msg("reflection call failed, assuming data is sufficient")
		return core.Reflection{Sufficient: true, Notes: "Reflection process encountered an error"}
	}
	logger.Debug().Str("raw", reply).Msg("reflection response")

	r, err := parseReflection(reply)
	if err != nil {
		logger.Warn().Err(err).Msg("reflection output unparseable, assuming data is sufficient")
		return core.Reflection{Sufficient: true, Notes: "Reflection process encountered an error"}
	}
	return r
}

func (e *Extractor) chat(ctx context.Context, system, user string) (string, error) {
	msg, err := e.ai.Chat(ctx, []core.Message{
		{Role: core.RoleSystem, Content: system},
		{Role: core.RoleUser, Content: user},
	})
	if err != nil {
		return "", err
	}
	return msg.Content, nil
}

func (e *Extractor) directFallback(query string, mode core.Mode) core.Extraction {
	return core.Extraction{
		Location:      DirectExtract(query),
		Mode:          mode,
		NeedsWeather:  true,
		NeedsWikiInfo: true,
		TimePeriod:    "current",
	}
}

// IsMalformed reports whether err marks unparseable model output.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}
