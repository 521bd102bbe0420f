package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-maker/internal/config"
	"github.com/jonathan/resume-maker/internal/db"
	"github.com/jonathan/resume-maker/internal/generation"
	"github.com/jonathan/resume-maker/internal/llm"
	"github.com/jonathan/resume-maker/internal/payment"
	"github.com/jonathan/resume-maker/internal/rendering"
	"github.com/jonathan/resume-maker/internal/server"
	"github.com/jonathan/resume-maker/internal/skills"
	"github.com/jonathan/resume-maker/internal/snapshot"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume generation, payment, and analytics endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Load()
	if servePort > 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	client, err := buildAIClient(cfg)
	if err != nil {
		return err
	}

	skillDB := skills.NewDatabase()
	srv := server.New(server.Config{
		Port:      cfg.Port,
		BaseURL:   cfg.BaseURL(),
		Store:     database,
		Snapshots: snapshot.NewStore(cfg.DataFile),
		Skills:    skillDB,
		Generator: generation.NewGenerator(client, skillDB),
		Renderer:  rendering.NewRenderer(rendering.NewRandomStylePicker(), rendering.NewChromePDFRenderer(), cfg.OutputDir),
		Stripe:    payment.NewStripeClient(cfg.Stripe),
		PayPal:    payment.NewPayPalClient(cfg.PayPal),
		CoinGate:  payment.NewCoinGateClient(cfg.CoinGate),
		AdminKey:  cfg.AdminAPIKey,
	})

	return srv.Start()
}

// buildAIClient returns nil when no API key is configured, which puts the
// generator in heuristic-only mode.
func buildAIClient(cfg *config.Config) (llm.Client, error) {
	if cfg.AIAPIKey == "" {
		log.Println("[WARN] no AI API key configured, using heuristic content generation")
		return nil, nil
	}
	client, err := llm.NewChatClient(&llm.Config{
		BaseURL: cfg.AIBaseURL,
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeout,
	}, cfg.AIAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	return client, nil
}
