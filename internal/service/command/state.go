package command

import (
	"strings"
	"sync"

	"github.com/sandevgo/wearbot/internal/core"
)

// ModeState holds the sticky default reasoning mode for a running session.
// Queries with an explicit mode token override it per turn.
type ModeState struct {
	mu   sync.Mutex
	mode core.Mode
}

func NewModeState(def core.Mode) *ModeState {
	return &ModeState{mode: def}
}

func (s *ModeState) Get() core.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *ModeState) Set(mode core.Mode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
}

// SplitModeToken peels a leading "react:", "cot:" or "tot:" prefix off a
// query. The returned error names the bad token so transports can warn; the
// session default still applies in that case.
func SplitModeToken(def core.Mode, text string) (core.Mode, string, error) {
	token, rest, found := strings.Cut(text, ":")
	if !found || token == "" || strings.ContainsAny(token, " \t") {
		return def, text, nil
	}

	mode, err := core.ParseMode(token)
	if err != nil {
		return def, strings.TrimSpace(rest), err
	}
	return mode, strings.TrimSpace(rest), nil
}
