package command

import (
	"context"

	"github.com/sandevgo/wearbot/internal/core"
)

type WearCommand struct {
	assistant core.Assistant
}

func NewWearCommand(assistant core.Assistant) *WearCommand {
	return &WearCommand{assistant: assistant}
}

func (c *WearCommand) Name() string {
	return "wear"
}

func (c *WearCommand) Description() string {
	return "Recommend clothing for the last fetched weather"
}

func (c *WearCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	return c.assistant.Recommend(ctx), nil
}
