package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/samandr77/microservices/compliance/internal/entity"
	"github.com/samandr77/microservices/compliance/pkg/transport"
)

const apiVersion = "v1beta"

var ErrMissingAPIKey = errors.New("gemini api key is not configured")

type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
}

type Client struct {
	cfg    Config
	models *genai.Models
}

// NewClient builds the client. Without an API key every Generate call fails
// with ErrMissingAPIKey.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{cfg: cfg}

	if cfg.APIKey == "" {
		slog.ErrorContext(ctx, "missing GEMINI_API_KEY, assistant replies will fall back to the apology message")
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport.NewRoundTripper(http.DefaultTransport),
		},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	c.models = client.Models

	return c, nil
}

// Generate sends the history plus the new message and returns the reply text.
// An empty string with a nil error means the model produced no text.
func (c *Client) Generate(ctx context.Context, req entity.ChatRequest) (string, error) {
	if c.models == nil {
		return "", ErrMissingAPIKey
	}

	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, m := range req.History {
		contents = append(contents, genai.NewContentFromText(m.Content, genai.Role(m.Role)))
	}

	contents = append(contents, genai.NewContentFromText(req.Message, genai.RoleUser))

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(c.cfg.Temperature)),
	}

	if req.SystemInstruction != "" {
		genCfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(req.SystemInstruction)}}
	}

	resp, err := c.models.GenerateContent(ctx, c.cfg.Model, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return resp.Text(), nil
}
