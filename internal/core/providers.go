package core

import "context"

type AIProvider interface {
	Chat(ctx context.Context, history []Message) (Message, error)
}

type WeatherProvider interface {
	Current(ctx context.Context, location string) (WeatherSnapshot, error)
}

type WikiProvider interface {
	Lookup(ctx context.Context, location string) (WikiSnippet, error)
}

type TurnsRepository interface {
	AddTurn(ctx context.Context, turn Turn) error
	GetTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error)
}
