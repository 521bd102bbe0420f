package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-maker/internal/skills"
)

var analyzeJobFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract ATS keywords from a job description",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeJobFile, "job", "", "Path to the job description text file")
	_ = analyzeCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	jobData, err := os.ReadFile(analyzeJobFile)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	skillDB := skills.NewDatabase()
	jd := string(jobData)

	keywords := skillDB.ExtractKeywords(jd)
	suggested := skillDB.RelevantSkills(jd)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Keywords (%d):\n  %s\n\n", len(keywords), strings.Join(keywords, ", "))
	fmt.Fprintf(out, "Suggested skills (%d):\n  %s\n", len(suggested), strings.Join(suggested, ", "))
	return nil
}
