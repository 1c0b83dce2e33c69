package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sentra-ai/sentra/internal/config"
	"github.com/sentra-ai/sentra/internal/llm"
	"github.com/sentra-ai/sentra/internal/server"
)

var (
	servePort     int
	serveProvider string
	serveMock     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for analyzing workflows, fixing risky steps and browsing per-session history.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", "LLM provider: gemini or openai (default: inferred from available API keys)")
	serveCmd.Flags().BoolVar(&serveMock, "mock", false, "Serve canned assessments without any API calls")
	rootCmd.AddCommand(serveCmd)
}

// resolveLLM picks a provider and API key. An explicit provider wins; with
// none given, whichever key is present in the environment decides, Gemini
// first. Returns an empty key when nothing is configured, which puts the
// server in fallback mode.
func resolveLLM(provider, apiKey string) (*llm.Config, string, error) {
	geminiKey := os.Getenv("GEMINI_API_KEY")
	openaiKey := os.Getenv("OPENAI_API_KEY")

	switch provider {
	case "gemini":
		if apiKey == "" {
			apiKey = geminiKey
		}
		return llm.DefaultGeminiConfig(), apiKey, nil
	case "openai":
		if apiKey == "" {
			apiKey = openaiKey
		}
		return llm.DefaultOpenAIConfig(), apiKey, nil
	case "":
		if apiKey != "" || geminiKey != "" {
			if apiKey == "" {
				apiKey = geminiKey
			}
			return llm.DefaultGeminiConfig(), apiKey, nil
		}
		if openaiKey != "" {
			return llm.DefaultOpenAIConfig(), openaiKey, nil
		}
		return llm.DefaultConfig(), "", nil
	default:
		return nil, "", fmt.Errorf("unknown provider %q (expected gemini or openai)", provider)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	llmConfig, apiKey, err := resolveLLM(serveProvider, "")
	if err != nil {
		return err
	}

	sessionCfg, err := config.NewSessionConfig()
	if err != nil {
		return fmt.Errorf("failed to create session config: %w", err)
	}

	cfg := server.Config{
		Port:          servePort,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		APIKey:        apiKey,
		LLMConfig:     llmConfig,
		SessionSecret: sessionCfg.Secret,
		SessionTTL:    time.Duration(sessionCfg.ExpirationHours) * time.Hour,
		UseMock:       serveMock,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
