package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zatekoja/voicebyte/internal/application/services"
	"github.com/zatekoja/voicebyte/internal/domain/providers"
	"github.com/zatekoja/voicebyte/internal/infrastructure/clients/openai"
	"github.com/zatekoja/voicebyte/pkg/config"
	"github.com/zatekoja/voicebyte/pkg/retry"
)

type rootOptions struct {
	offline bool
	verbose bool
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "triagectl",
		Short:        "Run the VoiceByte intake pipeline from the command line",
		Long:         "Normalize spoken numerals, extract intake fields and route symptoms to a department without the HTTP service.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if opts.verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
				Level(level).With().Timestamp().Logger()
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.offline, "offline", false, "never call the reasoning service; use local fallbacks only")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "attempt-timeout", 0, "per-attempt reasoning timeout (default from LLM_ATTEMPT_TIMEOUT)")

	cmd.AddCommand(newNormalizeCmd())
	cmd.AddCommand(newExtractCmd(opts))
	cmd.AddCommand(newClassifyCmd(opts))
	cmd.AddCommand(newEvalCmd(opts))

	return cmd
}

// reasoner builds the retrying reasoning service. Offline mode, or a missing
// key, leaves every caller on its fallback.
func (o *rootOptions) reasoner() (*services.ReasoningService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	timeout := cfg.Reasoning.AttemptTimeout
	if o.timeout > 0 {
		timeout = o.timeout
	}

	var provider providers.ReasoningProvider
	if !o.offline {
		client, err := openai.NewClient(&cfg.Reasoning)
		if err != nil {
			log.Warn().Err(err).Msg("reasoning service disabled")
		} else {
			provider = client
		}
	}
	return services.NewReasoningService(provider, retry.ReasoningPolicy(timeout)), nil
}

func joinArgs(cmd *cobra.Command, args []string) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text != "" {
		return text, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	text = strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no transcript given")
	}
	return text, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
