package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// OllamaClient provides an interface to the Ollama API. Calls block with
// no client-side timeout: a hung backend blocks the session, which is an
// accepted limitation of the strictly request/response design.
type OllamaClient struct {
	BaseURL   string
	ModelName string
	NumThread int
	NumGPU    int
	http      *resty.Client
}

// OllamaGenerateRequest represents a generation request to the Ollama API.
type OllamaGenerateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// OllamaGenerateResponse represents a generation response from the Ollama API.
type OllamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaClient creates a new Ollama client from the user configuration.
func NewOllamaClient(cfg UserConfig) *OllamaClient {
	return &OllamaClient{
		BaseURL:   cfg.OllamaURL,
		ModelName: cfg.Model,
		NumThread: cfg.NumThread,
		NumGPU:    cfg.NumGPU,
		http:      resty.New(),
	}
}

// IsAvailable checks whether the Ollama server is reachable.
func (c *OllamaClient) IsAvailable() bool {
	resp, err := c.http.R().Get(c.BaseURL + "/api/tags")
	return err == nil && resp.StatusCode() == http.StatusOK
}

// CheckModelAvailability checks whether the configured model is present
// in the server's model listing.
func (c *OllamaClient) CheckModelAvailability() (bool, error) {
	resp, err := c.http.R().Get(c.BaseURL + "/api/tags")
	if err != nil {
		return false, err
	}
	if resp.StatusCode() != http.StatusOK {
		return false, fmt.Errorf("ollama returned status code %d", resp.StatusCode())
	}

	var result struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return false, err
	}

	for _, model := range result.Models {
		if model.Name == c.ModelName {
			return true, nil
		}
	}
	return false, nil
}

// DownloadModel initiates a pull of the configured model. The pull is
// long-running; the call blocks until the server answers.
func (c *OllamaClient) DownloadModel() error {
	body := struct {
		Name     string `json:"name"`
		Insecure bool   `json:"insecure"`
	}{Name: c.ModelName, Insecure: true}

	resp, err := c.http.R().SetBody(body).Post(c.BaseURL + "/api/pull")
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 400 {
		var errorResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(resp.Body(), &errorResp); err == nil && errorResp.Error != "" {
			return fmt.Errorf("ollama error: %s", errorResp.Error)
		}
		return fmt.Errorf("ollama error: status code %d", resp.StatusCode())
	}
	return nil
}

// CheckGPUUsage reports whether the server loaded the model with GPU
// layers enabled.
func (c *OllamaClient) CheckGPUUsage() (bool, error) {
	resp, err := c.http.R().SetQueryParam("name", c.ModelName).Get(c.BaseURL + "/api/show")
	if err != nil {
		return false, err
	}
	if resp.StatusCode() != http.StatusOK {
		return false, fmt.Errorf("ollama returned status code %d", resp.StatusCode())
	}

	var info struct {
		GPULayers int `json:"gpu_layers"`
	}
	if err := json.Unmarshal(resp.Body(), &info); err != nil {
		return false, err
	}
	return info.GPULayers > 0, nil
}

// Generate sends a prompt, together with the serialized recent history
// window, to the generation endpoint and returns the generated text. A
// transport failure and a non-2xx status both return an error; callers
// must not proceed with extraction on error. On success the raw prompt is
// appended to history as a user turn; the caller appends the assistant
// turn once it accepts the reply.
func (c *OllamaClient) Generate(prompt string, history *ConversationHistory) (string, error) {
	fullPrompt := fmt.Sprintf("%s\n\nUser: %s\nAssistant:", history.Context(), prompt)

	request := OllamaGenerateRequest{
		Model:  c.ModelName,
		Prompt: fullPrompt,
		Stream: false,
		Options: map[string]interface{}{
			"num_gpu":    c.NumGPU,
			"num_thread": c.NumThread,
		},
	}

	resp, err := c.http.R().SetBody(request).Post(c.BaseURL + "/api/generate")
	if err != nil {
		return "", fmt.Errorf("error getting response from Ollama: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("ollama returned status code %d", resp.StatusCode())
	}

	var result OllamaGenerateResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("error decoding Ollama response: %v", err)
	}

	history.Append(RoleUser, prompt)
	return strings.TrimSpace(result.Response), nil
}
