package core

import "context"

type CmdRouter interface {
	Execute(ctx context.Context, sessionID, input string) (string, bool)
	ListCommands() []Command
}

type Assistant interface {
	Run(ctx context.Context, sessionID string, mode Mode, query string) string
	Recommend(ctx context.Context) string
	LastTurns(ctx context.Context, sessionID string) ([]Turn, error)
	Trace(ctx context.Context, query string) string
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}
