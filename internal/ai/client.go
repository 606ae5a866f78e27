// Package ai wraps the Gemini generateContent endpoint. One Client is
// constructed per process with the credential validated up front; the
// endpoints that do not generate keep working without it.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ebp-edu/rubricas-api/internal/prompt"
	"github.com/ebp-edu/rubricas-api/pkg/config"
	appErrors "github.com/ebp-edu/rubricas-api/pkg/errors"
)

// Client performs one outbound generateContent call per request. There is
// no retry on transient failure; the caller surfaces the typed error.
type Client struct {
	cfg  config.AIConfig
	http *http.Client
}

// NewClient validates the credential and builds the long-lived client.
// A missing API key is a configuration error, not a silent degradation.
func NewClient(cfg config.AIConfig) (*Client, error) {
	if !cfg.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrAIUnavailable, "")
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type generationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   *prompt.Schema `json:"responseSchema,omitempty"`
	Temperature      float64        `json:"temperature"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// GenerateJSON sends the prompt with a response schema and JSON MIME type
// and returns the raw candidate text.
func (c *Client) GenerateJSON(ctx context.Context, instruction string, schema *prompt.Schema, temperature float64) (string, error) {
	return c.generate(ctx, instruction, &generationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
		Temperature:      temperature,
	})
}

// GenerateText sends the prompt in free-text mode, used by the chat helper.
func (c *Client) GenerateText(ctx context.Context, instruction string, temperature float64) (string, error) {
	return c.generate(ctx, instruction, &generationConfig{Temperature: temperature})
}

func (c *Client) generate(ctx context.Context, instruction string, genCfg *generationConfig) (string, error) {
	if c == nil {
		return "", appErrors.Clone(appErrors.ErrAIUnavailable, "")
	}

	body := map[string]interface{}{
		"contents": []content{{Parts: []part{{Text: instruction}}}},
	}
	if genCfg != nil {
		body["generationConfig"] = genCfg
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "marshal generation request")
	}

	url := fmt.Sprintf("%s?key=%s", c.cfg.ModelEndpoint(), c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build generation request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrAINetwork.Code, appErrors.ErrAINetwork.Status, appErrors.ErrAINetwork.Message)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrAINetwork.Code, appErrors.ErrAINetwork.Status, appErrors.ErrAINetwork.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", appErrors.Wrap(fmt.Errorf("status %d: %s", resp.StatusCode, truncate(raw, 256)),
			appErrors.ErrAINetwork.Code, appErrors.ErrAINetwork.Status, appErrors.ErrAINetwork.Message)
	}

	var envelope struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrAINetwork.Code, appErrors.ErrAINetwork.Status, "decode generation envelope")
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return "", appErrors.Wrap(fmt.Errorf("empty candidate list"),
			appErrors.ErrAINetwork.Code, appErrors.ErrAINetwork.Status, appErrors.ErrAINetwork.Message)
	}

	return envelope.Candidates[0].Content.Parts[0].Text, nil
}

func truncate(raw []byte, max int) string {
	if len(raw) <= max {
		return string(raw)
	}
	return string(raw[:max])
}
