package command

import (
	"context"
	"strings"

	"github.com/sandevgo/wearbot/internal/core"
)

type TraceCommand struct {
	assistant core.Assistant
	formatter *ResponseFormatter
}

func NewTraceCommand(assistant core.Assistant) *TraceCommand {
	return &TraceCommand{
		assistant: assistant,
		formatter: NewResponseFormatter(),
	}
}

func (c *TraceCommand) Name() string {
	return "trace"
}

func (c *TraceCommand) Description() string {
	return "Run a query and dump the pipeline state as JSON"
}

func (c *TraceCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Pipeline Trace"),
			c.formatter.Usage("/trace [query]"),
			c.formatter.Examples([]string{
				"/trace weather in Paris",
			}),
		), nil
	}

	query := strings.Join(args, " ")
	return "```json\n" + c.assistant.Trace(ctx, query) + "\n```", nil
}
