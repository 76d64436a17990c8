package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/wearbot/internal/core"
)

type ModeCommand struct {
	state     *ModeState
	formatter *ResponseFormatter
}

func NewModeCommand(state *ModeState) *ModeCommand {
	return &ModeCommand{
		state:     state,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModeCommand) Name() string {
	return "mode"
}

func (c *ModeCommand) Description() string {
	return "Show or change the default reasoning mode"
}

func (c *ModeCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Reasoning Mode"),
			c.formatter.Label("Mode", string(c.state.Get())),
			c.formatter.Usage("/mode [react|cot|tot]"),
			c.formatter.Examples([]string{
				"/mode react",
				"/mode cot",
				"/mode tot",
			}),
		), nil
	}

	mode, err := core.ParseMode(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to set mode: %w", err)
	}
	c.state.Set(mode)

	return c.formatter.Combine(
		c.formatter.Success(fmt.Sprintf("Mode changed to: `%s`", mode)),
	), nil
}
