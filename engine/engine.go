// Package engine provides a client for engines-style text completion
// APIs of the form POST /v1/engines/{engine}/completions.
package engine

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/ncecere/textgen-demo/engineutil"
)

// HTTPClient is the minimal interface required from an HTTP client.
// It matches the Do method on *http.Client and allows callers to
// substitute custom clients or middleware.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// CompletionModel is the interface for a single completion engine.
// Implementations map CompletionRequest values to the engine's HTTP API.
type CompletionModel interface {
	Generate(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)
}

// CompletionRequest describes one text completion request.
//
// All fields are sent on the wire; the demo form always supplies every
// value, so none of them are optional.
type CompletionRequest struct {
	// Prompt is the input text seeded to the generation request.
	Prompt string
	// MaxTokens limits the number of tokens produced.
	MaxTokens int
	// Temperature controls randomness of the output.
	Temperature float64
	// TopP controls nucleus sampling for the output.
	TopP float64
}

// CompletionResult contains the generated completion text.
type CompletionResult struct {
	Text string
}

// ClientOptions configure a Client.
type ClientOptions struct {
	// BaseURL is the root URL of the serving endpoint.
	BaseURL string
	// APIKey is an optional bearer token attached to every request.
	APIKey string
	// HTTPClient is the underlying HTTP client. If nil, a default
	// client is used.
	HTTPClient HTTPClient
	// Headers contains additional HTTP headers attached to every
	// outbound request.
	Headers http.Header
}

// Client talks to an engines-style serving endpoint. Individual engines
// are addressed through the Engine method.
//
// Environment variables:
//   - TEXTGEN_BASE_URL (optional, defaults to https://opt.alpa.ai)
//   - TEXTGEN_API_KEY (optional bearer token)
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
	headers    http.Header
}

// NewClient creates a new serving-endpoint client, reading unset
// options from the environment.
func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv("TEXTGEN_BASE_URL")
		if baseURL == "" {
			baseURL = "https://opt.alpa.ai"
		}
	}
	baseURL = strings.TrimRight(baseURL, "/")

	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("TEXTGEN_API_KEY")
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = engineutil.DefaultHTTPClient()
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: hc,
		headers:    opts.Headers,
	}
}

// Engine returns a CompletionModel for the given engine name, e.g. "175b".
func (c *Client) Engine(name string) CompletionModel {
	return &completionModel{client: c, engine: name}
}

func (c *Client) completionsURL(engine string) string {
	return c.baseURL + "/v1/engines/" + engine + "/completions"
}
