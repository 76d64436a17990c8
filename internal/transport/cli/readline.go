package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/wearbot/internal/config"
	"github.com/sandevgo/wearbot/internal/core"
	"github.com/sandevgo/wearbot/internal/service/command"
	"github.com/sandevgo/wearbot/pkg/log"
)

const defaultSessionID = "cli-local"

type ReadLine struct {
	cfg       *config.AppConfig
	assistant core.Assistant
	router    core.CmdRouter
	mode      *command.ModeState
	rl        *readline.Instance
}

func NewReadLine(
	assistant core.Assistant,
	router core.CmdRouter,
	mode *command.ModeState,
	cfg *config.AppConfig,
) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:       cfg,
		assistant: assistant,
		router:    router,
		mode:      mode,
		rl:        rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("ReadLine chat started. Type 'exit' to quit.")

	for _, cmd := range r.router.ListCommands() {
		fmt.Fprintf(r.rl.Stdout(), "/%s - %s\n", cmd.Name(), cmd.Description())
	}

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if reply, handled := r.router.Execute(ctx, defaultSessionID, line); handled {
			fmt.Fprintf(r.rl.Stdout(), "%s\n", reply)
			continue
		}

		mode, query, err := command.SplitModeToken(r.mode.Get(), line)
		if err != nil {
			fmt.Fprintf(r.rl.Stdout(), "%v, using %s\n", err, mode)
		}
		reply := r.assistant.Run(ctx, defaultSessionID, mode, query)
		fmt.Fprintf(r.rl.Stdout(), "%s\n", reply)
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
