// Package web serves the text-generation demo page and the JSON API
// backing it.
package web

import (
	"errors"
	"time"

	_ "embed"

	"github.com/gofiber/fiber/v2"

	textgen "github.com/ncecere/textgen-demo"
	"github.com/ncecere/textgen-demo/registry"
)

//go:embed static/completion.html
var completionPage []byte

// Options configure a demo Server.
type Options struct {
	// Registry resolves engine names to completion models.
	Registry registry.Registry
	// DefaultEngine is used when a request names no engine.
	DefaultEngine string
	// CacheTTL bounds how long identical completions are reused.
	// Zero disables the response cache.
	CacheTTL time.Duration
}

// Server hosts the demo page and its API.
type Server struct {
	app           *fiber.App
	registry      registry.Registry
	defaultEngine string
	cache         *completionCache
}

// New creates a demo Server with all routes registered.
func New(opts Options) *Server {
	s := &Server{
		registry:      opts.Registry,
		defaultEngine: opts.DefaultEngine,
		cache:         newCompletionCache(opts.CacheTTL),
	}

	app := fiber.New(fiber.Config{AppName: "textgen-demo"})
	app.Get("/", s.handleIndex)
	app.Get("/api/config", s.handleConfig)
	app.Get("/api/examples", s.handleExamples)
	app.Post("/api/completions", s.handleCompletions)
	s.app = app
	return s
}

// Listen starts serving on addr (blocking).
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server and the cache expiration loop.
func (s *Server) Shutdown() error {
	s.cache.Close()
	return s.app.Shutdown()
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(completionPage)
}

// configResponse carries the build-time constants the page needs to
// mirror server-side behavior: the ETA formula and the engine list.
type configResponse struct {
	DefaultEngine string   `json:"default_engine"`
	Engines       []string `json:"engines"`
	EtaOverheadMs int64    `json:"eta_overhead_ms"`
	EtaPerTokenMs int64    `json:"eta_per_token_ms"`
}

func (s *Server) handleConfig(c *fiber.Ctx) error {
	return c.JSON(configResponse{
		DefaultEngine: s.defaultEngine,
		Engines:       s.registry.Names(),
		EtaOverheadMs: textgen.EtaOverhead.Milliseconds(),
		EtaPerTokenMs: textgen.EtaPerToken.Milliseconds(),
	})
}

type exampleResponse struct {
	Key       string `json:"key"`
	Title     string `json:"title"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

func (s *Server) handleExamples(c *fiber.Ctx) error {
	all := textgen.Examples()
	out := make([]exampleResponse, 0, len(all))
	for _, ex := range all {
		out = append(out, exampleResponse{
			Key:       ex.Key,
			Title:     ex.Title,
			Prompt:    ex.Prompt,
			MaxTokens: ex.MaxTokens,
		})
	}
	return c.JSON(out)
}

type completionParams struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	Engine      string  `json:"engine"`
}

type completionResponse struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

func (s *Server) handleCompletions(c *fiber.Ctx) error {
	var params completionParams
	if err := c.BodyParser(&params); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}

	engineName := params.Engine
	if engineName == "" {
		engineName = s.defaultEngine
	}
	model, err := s.registry.Engine(engineName)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	form := textgen.Form{
		Prompt:      textgen.NormalizePrompt(params.Prompt),
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
		TopP:        params.TopP,
	}

	key := cacheKey(engineName, form)
	if completion, ok := s.cache.Get(key); ok {
		return c.JSON(completionResponse{Prompt: form.Prompt, Completion: completion})
	}

	// One controller per request: the single-submission invariant is a
	// page-level concern and lives in the browser; the server accepts
	// concurrent requests from distinct clients.
	ctrl, err := textgen.NewController(model, textgen.NopView{})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out, err := ctrl.Submit(c.Context(), form)
	if err != nil {
		var iae *textgen.InvalidArgumentError
		if errors.As(err, &iae) {
			return fiber.NewError(fiber.StatusBadRequest, iae.Error())
		}
		// Surface the raw upstream error body verbatim; the page shows
		// it in the error region.
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(fiber.StatusBadGateway).SendString(out.Err)
	}

	s.cache.Set(key, out.Completion)
	return c.JSON(completionResponse{Prompt: out.Prompt, Completion: out.Completion})
}
