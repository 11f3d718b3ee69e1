package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/ncecere/textgen-demo/engineutil"
)

// completionModel implements CompletionModel for one named engine on a
// shared Client.
type completionModel struct {
	client *Client
	engine string
}

type wireCompletionRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type wireCompletionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

func (m *completionModel) Generate(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	body := wireCompletionRequest{
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.client.completionsURL(m.engine), bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	// Attach any custom headers first, then enforce required headers.
	for k, vs := range m.client.headers {
		for _, v := range vs {
			if v == "" {
				continue
			}
			httpReq.Header.Add(k, v)
		}
	}
	if m.client.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+m.client.apiKey)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.client.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}

	var out wireCompletionResponse
	if err := engineutil.ReadJSON(resp, &out); err != nil {
		return nil, err
	}
	if len(out.Choices) == 0 {
		return &CompletionResult{}, nil
	}

	return &CompletionResult{Text: out.Choices[0].Text}, nil
}
