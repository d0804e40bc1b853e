// Command studio is the command-line front end of the creative studio: it
// manages the API key pool and model preferences, runs generation
// operations and serves them over MCP.
//
// Usage:
//
//	studio keys add AIza...
//	studio image "a red bicycle" --ratio 16:9 --count 2 --out bike
//	studio edit photo.jpg "make the sky purple" --out edited.png
//	studio speak "Xin chào" --voice Kore --out hello.wav
//	studio mcp
//
// Configuration comes from the environment (and a .env file if present):
// STUDIO_DB, GEMINI_API_KEY, STUDIO_LOG_LEVEL, STUDIO_MAX_ATTEMPTS,
// STUDIO_RETRY_DELAY, STUDIO_MAX_RETRY_DELAY, STUDIO_POLL_INTERVAL,
// STUDIO_PACING and STUDIO_RESET_ERRORS_ON_SUCCESS.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spetersoncode/genstudio"
	"github.com/spetersoncode/genstudio/client"
	"github.com/spetersoncode/genstudio/retry"
	"github.com/spf13/cobra"
)

// newClient builds the studio client; tests replace it.
var newClient = client.New

// app is the state shared by all commands, set up before each command runs.
type app struct {
	cfg    *Config
	logger *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", genstudio.UserMessage(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var verbose bool

	root := &cobra.Command{
		Use:           "studio",
		Short:         "Generative creative studio backed by Gemini, Imagen and Veo",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			if verbose {
				cfg.LogLevel = "debug"
			}
			level, _ := parseLevel(cfg.LogLevel)
			a.cfg = cfg
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(a.logger)
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every attempt (same as STUDIO_LOG_LEVEL=debug)")

	root.AddCommand(keysCmd(a))
	root.AddCommand(modelsCmd(a))
	root.AddCommand(imageCmd(a))
	root.AddCommand(editCmd(a))
	root.AddCommand(variationsCmd(a))
	root.AddCommand(promptCmd(a))
	root.AddCommand(scriptCmd(a))
	root.AddCommand(translateCmd(a))
	root.AddCommand(speakCmd(a))
	root.AddCommand(videoCmd(a))
	root.AddCommand(mcpCmd(a))
	return root
}

// open builds a client and starts logging its attempt events. The returned
// function closes both.
func (a *app) open(ctx context.Context) (*client.Client, func(), error) {
	events := make(chan retry.Event, 64)
	c, err := newClient(a.cfg.ClientConfig(a.logger, events))
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		client.LogEvents(ctx, events, a.logger)
	}()

	return c, func() {
		cancel()
		<-done
		if err := c.Close(); err != nil {
			a.logger.Warn("failed to close store", "error", err)
		}
	}, nil
}
