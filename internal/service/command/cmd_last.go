package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/wearbot/internal/core"
)

type LastCommand struct {
	assistant core.Assistant
	formatter *ResponseFormatter
}

func NewLastCommand(assistant core.Assistant) *LastCommand {
	return &LastCommand{
		assistant: assistant,
		formatter: NewResponseFormatter(),
	}
}

func (c *LastCommand) Name() string {
	return "last"
}

func (c *LastCommand) Description() string {
	return "Show recent turns for this session"
}

func (c *LastCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	turns, err := c.assistant.LastTurns(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load turns: %w", err)
	}
	if len(turns) == 0 {
		return c.formatter.Info("No turns recorded yet"), nil
	}

	items := make([]string, 0, len(turns))
	for _, t := range turns {
		items = append(items, fmt.Sprintf("[%s] %s (%s)", t.Mode, t.Query, t.Location))
	}

	return c.formatter.Combine(
		c.formatter.Info("Recent Turns"),
		c.formatter.List(items),
	), nil
}
