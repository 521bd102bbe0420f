package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-maker/internal/config"
	"github.com/jonathan/resume-maker/internal/generation"
	"github.com/jonathan/resume-maker/internal/observability"
	"github.com/jonathan/resume-maker/internal/rendering"
	"github.com/jonathan/resume-maker/internal/skills"
	"github.com/jonathan/resume-maker/internal/types"
)

var (
	generateProfile  string
	generateJobFile  string
	generateOutput   string
	generateStrategy string
	generateStyle    string
	generateVerbose  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored resume PDF from the command line",
	Long:  `Generate resume content for a saved profile against a job description file and render it to PDF, without going through the HTTP API or the free-tier gate.`,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateProfile, "profile", "data/user_data.json", "Path to the profile JSON file")
	generateCmd.Flags().StringVar(&generateJobFile, "job", "", "Path to the job description text file")
	generateCmd.Flags().StringVar(&generateOutput, "output", "output", "Directory for the rendered PDF")
	generateCmd.Flags().StringVar(&generateStrategy, "strategy", "parallel", "Generation strategy: parallel, sequential, or combined")
	generateCmd.Flags().StringVar(&generateStyle, "style", "", "Style preset name (random when empty)")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print generation details")
	_ = generateCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	profileData, err := os.ReadFile(generateProfile)
	if err != nil {
		return fmt.Errorf("failed to read profile: %w", err)
	}
	var profile types.UserProfile
	if err := json.Unmarshal(profileData, &profile); err != nil {
		return fmt.Errorf("failed to parse profile: %w", err)
	}

	jobData, err := os.ReadFile(generateJobFile)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	client, err := buildAIClient(cfg)
	if err != nil {
		return err
	}

	picker := rendering.NewRandomStylePicker()
	if generateStyle != "" {
		preset, ok := rendering.PresetByName(generateStyle)
		if !ok {
			return fmt.Errorf("unknown style preset: %s", generateStyle)
		}
		picker = rendering.FixedStylePicker{Preset: preset}
	}

	skillDB := skills.NewDatabase()
	generator := generation.NewGenerator(client, skillDB)
	renderer := rendering.NewRenderer(picker, rendering.NewChromePDFRenderer(), generateOutput)

	var printer *observability.Printer
	if generateVerbose {
		printer = observability.NewPrinter(cmd.OutOrStdout())
		printer.PrintGenerationRequest(&profile, string(jobData))
	}

	ctx := context.Background()
	record := generator.Generate(ctx, &profile, string(jobData), generation.ParseStrategy(generateStrategy))

	if printer != nil {
		printer.PrintResumeRecord(record)
	}

	result, err := renderer.Render(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}

	if printer != nil {
		printer.PrintRenderResult(result.StyleName, result.Path)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Style:  %s\nOutput: %s\n", result.StyleName, result.Path)
	return nil
}
