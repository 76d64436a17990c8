package command

import (
	"github.com/sandevgo/wearbot/internal/core"
)

func NewCommands(
	assistant core.Assistant,
	state *ModeState,
) []core.Command {
	return []core.Command{
		NewModeCommand(state),
		NewWearCommand(assistant),
		NewLastCommand(assistant),
		NewTraceCommand(assistant),
	}
}
