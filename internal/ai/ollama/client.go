package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Lucas-Iglesia/Thesis-Carola/internal/logger"
	"go.uber.org/zap"
)

const (
	defaultHost  = "http://localhost:11434"
	defaultModel = "deepseek-r1"
	chatPath     = "/api/chat"
)

// Client talks to a local Ollama instance via its REST API.
type Client struct {
	host       string
	model      string
	logger     *zap.Logger
	HTTPClient *http.Client
}

// New creates a Client for the given Ollama host and model. Empty values fall
// back to the local default instance and the default scoring model.
func New(host, model string, log *zap.Logger) *Client {
	if host = strings.TrimSpace(host); host == "" {
		host = defaultHost
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Client{
		host:   strings.TrimRight(host, "/"),
		model:  model,
		logger: logger.WithProvider(log, "ollama", model),
		HTTPClient: &http.Client{
			// Local models can be slow to load and generate.
			Timeout: 5 * time.Minute,
		},
	}
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// Complete sends the prompt as a single user message and returns the model response text.
func (c *Client) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt must not be empty")
	}

	payload := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
		Options:  map[string]any{"temperature": temperature},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	url := c.host + chatPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("make request", zap.String("url", url))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}

	var chat chatResponse
	if err := json.Unmarshal(data, &chat); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	output := strings.TrimSpace(chat.Message.Content)
	if output == "" {
		return "", errors.New("ollama returned empty response")
	}

	return output, nil
}

func (c *Client) Model() string {
	return c.model
}
