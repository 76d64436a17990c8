package reason

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/wearbot/internal/core"
)

// ErrMalformed reports that the model reply did not contain the fixed-field
// block a strategy asked for. Callers decide how to degrade; nothing here
// silently invents field values.
var ErrMalformed = errors.New("malformed model output")

const locationCutset = "?!.,;:"

func cleanLocation(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), locationCutset)
}

func fieldValue(line, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, prefix))
}

// plan is the parsed single-shot planning block.
type plan struct {
	Location      string
	NeedsWeather  bool
	NeedsWikiInfo bool
	TimePeriod    string
	Aspects       []string
}

// parsePlan scans the LOCATION / NEEDS_WEATHER / NEEDS_LOCATION_INFO /
// TIME_PERIOD / WEATHER_ASPECTS block. The LOCATION line must be present,
// even if its value is empty; auxiliary fields default permissively.
func parsePlan(text string) (plan, error) {
	p := plan{
		NeedsWeather:  true,
		NeedsWikiInfo: true,
		TimePeriod:    "current",
	}
	sawLocation := false

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "LOCATION:"):
			p.Location = cleanLocation(fieldValue(line, "LOCATION:"))
			sawLocation = true
		case strings.HasPrefix(line, "NEEDS_WEATHER:"):
			p.NeedsWeather = strings.EqualFold(fieldValue(line, "NEEDS_WEATHER:"), "yes")
		case strings.HasPrefix(line, "NEEDS_LOCATION_INFO:"):
			p.NeedsWikiInfo = strings.EqualFold(fieldValue(line, "NEEDS_LOCATION_INFO:"), "yes")
		case strings.HasPrefix(line, "TIME_PERIOD:"):
			p.TimePeriod = strings.ToLower(fieldValue(line, "TIME_PERIOD:"))
		case strings.HasPrefix(line, "WEATHER_ASPECTS:"):
			for _, aspect := range strings.Split(fieldValue(line, "WEATHER_ASPECTS:"), ",") {
				if a := strings.TrimSpace(aspect); a != "" {
					p.Aspects = append(p.Aspects, a)
				}
			}
		}
	}

	if !sawLocation {
		return plan{}, fmt.Errorf("%w: no LOCATION field in planning block", ErrMalformed)
	}
	return p, nil
}

// cotResult is the parsed chain-of-thought block.
type cotResult struct {
	Location string
	Steps    []string
}

func parseCoT(text string) (cotResult, error) {
	var r cotResult
	sawLocation := false

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Step "):
			r.Steps = append(r.Steps, line)
		case strings.HasPrefix(line, "LOCATION:"):
			r.Location = cleanLocation(fieldValue(line, "LOCATION:"))
			sawLocation = true
		}
	}

	if !sawLocation {
		return cotResult{}, fmt.Errorf("%w: no LOCATION field in reasoning block", ErrMalformed)
	}
	return r, nil
}

// totResult is the parsed tree-of-thought candidate block.
type totResult struct {
	Candidates []core.Candidate
	Selected   string
	Reasoning  string
}

// parseToT walks the repeated POSSIBLE LOCATION / SCORE / REASON groups
// followed by SELECTED LOCATION / SELECTION REASONING. A reply with no
// candidates at all is malformed; a missing explicit selection is not —
// the first candidate stands in.
func parseToT(text string) (totResult, error) {
	var r totResult
	var current *core.Candidate

	flush := func() {
		if current != nil {
			r.Candidates = append(r.Candidates, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "POSSIBLE LOCATION:"):
			flush()
			current = &core.Candidate{Location: cleanLocation(fieldValue(line, "POSSIBLE LOCATION:"))}
		case strings.HasPrefix(line, "SCORE:"):
			if current != nil {
				score, err := strconv.Atoi(fieldValue(line, "SCORE:"))
				if err == nil {
					current.Score = score
				}
			}
		case strings.HasPrefix(line, "REASON:"):
			if current != nil {
				current.Reason = fieldValue(line, "REASON:")
			}
		case strings.HasPrefix(line, "SELECTED LOCATION:"):
			flush()
			r.Selected = cleanLocation(fieldValue(line, "SELECTED LOCATION:"))
		case strings.HasPrefix(line, "SELECTION REASONING:"):
			r.Reasoning = fieldValue(line, "SELECTION REASONING:")
		}
	}
	flush()

	if len(r.Candidates) == 0 && r.Selected == "" {
		return totResult{}, fmt.Errorf("%w: no candidate locations in block", ErrMalformed)
	}

	if r.Selected == "" {
		r.Selected = r.Candidates[0].Location
		if r.Reasoning == "" {
			if len(r.Candidates) == 1 {
				r.Reasoning = "Only one location was identified."
			} else {
				r.Reasoning = "No explicit selection was made; the first candidate was used."
			}
		}
	}
	return r, nil
}

// parseReflection scans the SUFFICIENT / MISSING_INFORMATION / NOTES /
// SUGGESTED_ACTION / ALTERNATIVE_LOCATION block.
func parseReflection(text string) (core.Reflection, error) {
	r := core.Reflection{Sufficient: true}
	sawSufficient := false

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "SUFFICIENT:"):
			r.Sufficient = strings.EqualFold(fieldValue(line, "SUFFICIENT:"), "yes")
			sawSufficient = true
		case strings.HasPrefix(line, "MISSING_INFORMATION:"):
			missing := fieldValue(line, "MISSING_INFORMATION:")
			if !strings.EqualFold(missing, "none") {
				for _, item := range strings.Split(missing, ",") {
					if m := strings.TrimSpace(item); m != "" {
						r.Missing = append(r.Missing, m)
					}
				}
			}
		case strings.HasPrefix(line, "NOTES:"):
			r.Notes = fieldValue(line, "NOTES:")
		case strings.HasPrefix(line, "SUGGESTED_ACTION:"):
			action := fieldValue(line, "SUGGESTED_ACTION:")
			if !strings.EqualFold(action, "none") {
				r.SuggestedAction = action
			}
		case strings.HasPrefix(line, "ALTERNATIVE_LOCATION:"):
			alt := fieldValue(line, "ALTERNATIVE_LOCATION:")
			if !strings.EqualFold(alt, "none") {
				r.AlternativeLocation = cleanLocation(alt)
			}
		}
	}

	if !sawSufficient {
		return core.Reflection{}, fmt.Errorf("%w: no SUFFICIENT field in reflection block", ErrMalformed)
	}
	return r, nil
}
