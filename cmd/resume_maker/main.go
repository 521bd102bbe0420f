// Package main provides the entry point for the Resume Maker service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_maker",
	Short: "AI-powered ATS resume generator",
	Long:  "Resume Maker tailors resume content to a job description with an AI provider, renders it as a styled PDF through headless Chrome, and serves the flow over a REST API with free-tier gating and payments.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
