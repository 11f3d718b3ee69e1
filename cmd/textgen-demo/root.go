package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "textgen-demo",
	Short: "Web demo frontend for an engines-style text completion API",
	Long: "textgen-demo serves a browser demo page for submitting text-generation\n" +
		"prompts to a remote serving endpoint, and provides a one-shot CLI for the\n" +
		"same request cycle.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(examplesCmd)
}
