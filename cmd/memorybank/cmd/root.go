package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/habiliai/memorybank/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootParams struct {
	configFile string
	logLevel   string
	logHandler string
}

func newRootCmd() *cobra.Command {
	params := &rootParams{}

	cmd := &cobra.Command{
		Use:   "memorybank",
		Short: "Personal long-term memory store for conversational assistants",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load()
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&params.configFile, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&params.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&params.logHandler, "log-handler", "", "Log handler (default, json)")

	cmd.AddCommand(
		newServeCmd(params),
		newEvalCmd(params),
	)

	return cmd
}

func (p *rootParams) loadConfig() (*config.Config, error) {
	conf := config.NewConfig()

	if p.configFile != "" {
		if err := conf.LoadFromFile(p.configFile); err != nil {
			return nil, err
		}
	}

	if p.logLevel != "" {
		conf.Log.LogLevel = p.logLevel
	}
	if p.logHandler != "" {
		conf.Log.LogHandler = p.logHandler
	}

	if conf.Model.OpenAIAPIKey == "" {
		conf.Model.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if conf.Model.AnthropicAPIKey == "" {
		conf.Model.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	return conf, nil
}

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		os.Exit(1)
	}
}
