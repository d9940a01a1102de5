// Package synth turns collected article records into a structured outlook
// report by way of an LLM, either through the tenant job queue or directly
// through a chat-completions endpoint.
package synth

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cioinsight/deckgen/internal/model"
	"github.com/cioinsight/deckgen/internal/oauth"
)

// Provider generates an outlook report from a fully assembled prompt.
type Provider interface {
	// Name returns the provider name for logging.
	Name() string

	// Synthesize submits the prompt and returns the parsed report. The
	// prompt already carries the system instructions and article context.
	Synthesize(ctx context.Context, prompt string) (*model.Report, error)
}

// NewProvider selects the transport from configuration.
func NewProvider(cfg model.SynthesisConfig, httpCfg model.HTTPConfig, log *logrus.Entry) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "job", "":
		tokens := oauth.NewClient(cfg.AuthURL, cfg.ClientID, cfg.ClientSecret, httpCfg.Timeout)
		return NewJobClient(cfg, httpCfg, tokens, log), nil

	case "openai":
		return NewOpenAIProvider(cfg)

	default:
		return nil, fmt.Errorf("unknown synthesis provider: %s (supported: job, openai)", cfg.Provider)
	}
}
