package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	textgen "github.com/ncecere/textgen-demo"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "List the built-in example prompts",
	Run:   runExamples,
}

func runExamples(_ *cobra.Command, _ []string) {
	for _, ex := range textgen.Examples() {
		firstLine, _, _ := strings.Cut(ex.Prompt, "\n")
		fmt.Printf("%-10s %-16s %4d tokens  %s\n", ex.Key, ex.Title, ex.MaxTokens, firstLine)
	}
}
