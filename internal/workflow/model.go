package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Model sends a system instruction plus one user prompt with a set of data
// URI images to a vision model and returns the text of its reply.
type Model interface {
	Infer(ctx context.Context, system, prompt string, images []string) (string, error)
	Name() string
	Provider() string
}

// Sampling carries the fixed low-temperature, low-breadth options that bias
// the model toward literal extraction.
type Sampling struct {
	Temperature float64
	TopK        int
}

func (s Sampling) options() map[string]any {
	return map[string]any{
		"temperature": s.Temperature,
		"top_k":       s.TopK,
	}
}

type agentModel struct {
	cfg      gaconfig.AgentConfig
	sampling Sampling
}

// NewAgentModel returns a Model backed by a go-agents agent. A fresh agent
// is created for every call.
func NewAgentModel(cfg gaconfig.AgentConfig, sampling Sampling) Model {
	return &agentModel{
		cfg:      cfg,
		sampling: sampling,
	}
}

func (m *agentModel) Infer(ctx context.Context, system, prompt string, images []string) (string, error) {
	cfg := m.cfg
	cfg.SystemPrompt = system

	a, err := agent.New(&cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Vision(ctx, prompt, images, m.sampling.options())
	if err != nil {
		return "", fmt.Errorf("vision call: %w", err)
	}

	return resp.Content(), nil
}

func (m *agentModel) Name() string {
	if m.cfg.Model == nil {
		return ""
	}
	return m.cfg.Model.Name
}

func (m *agentModel) Provider() string {
	if m.cfg.Provider == nil {
		return ""
	}
	return m.cfg.Provider.Name
}

// EncodeImage converts a captured payload to a data URI. PNG payloads keep
// their format; everything else is sent as JPEG.
func EncodeImage(img Image) (string, error) {
	if len(img.Data) == 0 {
		return "", ErrEmptyImage
	}

	format := document.JPEG
	if img.ContentType == "image/png" {
		format = document.PNG
	}

	dataURI, err := encoding.EncodeImageDataURI(img.Data, format)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodeImage, err)
	}

	return dataURI, nil
}
