package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	textgen "github.com/ncecere/textgen-demo"
	"github.com/ncecere/textgen-demo/config"
	"github.com/ncecere/textgen-demo/engine"
)

var (
	genPrompt      string
	genExample     string
	genMaxTokens   int
	genTemperature float64
	genTopP        float64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run one completion request from the terminal",
	Long:  "Submit a single prompt to the serving endpoint and print the completion.",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genPrompt, "prompt", "", "Prompt text")
	generateCmd.Flags().StringVar(&genExample, "example", "", "Load a named example prompt (see 'examples')")
	generateCmd.Flags().IntVar(&genMaxTokens, "max-tokens", 64, "Response length (32-512, multiple of 32)")
	generateCmd.Flags().Float64Var(&genTemperature, "temperature", 0.7, "Sampling temperature (0.1-1.0)")
	generateCmd.Flags().Float64Var(&genTopP, "top-p", 0.5, "Nucleus sampling threshold (0.0-1.0)")
}

// terminalView renders controller updates as terminal output.
type terminalView struct{}

func (terminalView) SetBusy(busy bool) {
	if busy {
		fmt.Fprintln(os.Stderr, "generating...")
	}
}

func (terminalView) ShowETA(eta time.Duration) {
	fmt.Fprintf(os.Stderr, "estimated wait: ~%ds\n", int(eta.Round(time.Second).Seconds()))
}

func (terminalView) ShowResult(prompt, completion string) {
	fmt.Print(prompt)
	fmt.Println(completion)
}

func (terminalView) ShowError(raw string) {
	fmt.Fprintln(os.Stderr, raw)
}

func (terminalView) ClearError() {}

func runGenerate(_ *cobra.Command, _ []string) error {
	form := textgen.Form{
		Prompt:      genPrompt,
		MaxTokens:   genMaxTokens,
		Temperature: genTemperature,
		TopP:        genTopP,
	}

	if genExample != "" {
		ex, ok := textgen.LookupExample(genExample)
		if !ok {
			return fmt.Errorf("unknown example %q (try 'textgen-demo examples')", genExample)
		}
		form.Prompt = ex.Prompt
		form.MaxTokens = ex.MaxTokens
	}
	if form.Prompt == "" {
		return fmt.Errorf("either --prompt or --example is required")
	}

	cfg := config.Load()
	client := engine.NewClient(engine.ClientOptions{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
	})

	ctrl, err := textgen.NewController(client.Engine(cfg.Engine), terminalView{})
	if err != nil {
		return err
	}

	if _, err := ctrl.Submit(context.Background(), form); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	return nil
}
