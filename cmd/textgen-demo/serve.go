package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ncecere/textgen-demo/config"
	"github.com/ncecere/textgen-demo/engine"
	"github.com/ncecere/textgen-demo/middleware"
	"github.com/ncecere/textgen-demo/registry"
	"github.com/ncecere/textgen-demo/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo web server",
	Long:  "Start the HTTP server hosting the text-generation demo page.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (overrides TEXTGEN_ADDR)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Load()
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	client := engine.NewClient(engine.ClientOptions{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
	})
	model := middleware.WrapCompletionModel(
		client.Engine(cfg.Engine),
		middleware.WithLogging(middleware.LoggingOptions{}),
	)

	reg := registry.New()
	reg.Register(cfg.Engine, model)

	srv := web.New(web.Options{
		Registry:      reg,
		DefaultEngine: cfg.Engine,
		CacheTTL:      cfg.CacheTTL,
	})

	log.Printf("serving demo for engine %q at %s on %s", cfg.Engine, cfg.BaseURL, cfg.Addr)
	return srv.Listen(cfg.Addr)
}
