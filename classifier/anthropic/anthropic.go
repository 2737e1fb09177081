// Package anthropic provides a classifier delegate backed by the Anthropic
// Claude Messages API. It implements core.Classifier so richer language
// understanding can replace the keyword rules without touching the agent or
// the chain logic. Structural safety does not depend on the model: every
// verdict passes through the shared guards in the classifier package.
package anthropic

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hupe1980/memtrail/classifier"
	"github.com/hupe1980/memtrail/core"
)

// Options configures the Anthropic classifier (model id, max tokens, API
// key). Temperature is pinned to zero; the classifier contract requires a
// deterministic decision for identical inputs.
type Options struct {
	Model     anthropic.Model
	MaxTokens int64
	APIKey    string
}

// Classifier wraps the Anthropic Messages API behind core.Classifier.
type Classifier struct {
	client *anthropic.Client
	opts   Options
}

var _ core.Classifier = (*Classifier)(nil)

// New creates an Anthropic-backed classifier using the official client.
func New(optFns ...func(o *Options)) *Classifier {
	opts := Options{
		Model:     anthropic.ModelClaude3_5Sonnet20241022,
		MaxTokens: 1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Classifier{client: &client, opts: opts}
}

// NewFromClient creates an Anthropic-backed classifier from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Classifier {
	opts := Options{
		Model:     anthropic.ModelClaude3_5Sonnet20241022,
		MaxTokens: 1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Classifier{client: client, opts: opts}
}

// Classify implements core.Classifier by requesting a strict JSON verdict and
// converting it through the shared structural guards.
func (c *Classifier) Classify(ctx context.Context, snapshot *core.Profile, turnID, text string) (core.Proposal, error) {
	params := anthropic.MessageNewParams{
		Model:     c.opts.Model,
		MaxTokens: c.opts.MaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: classifier.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(classifier.BuildUserPrompt(snapshot, text))),
		},
		Temperature: anthropic.Float(0),
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return core.Proposal{}, fmt.Errorf("anthropic api error: %w", err)
	}

	var raw string
	for _, block := range resp.Content {
		if block.Type == "text" {
			raw += block.AsText().Text
		}
	}

	verdict, err := classifier.ParseVerdict(raw)
	if err != nil {
		// Unparseable output asserts nothing.
		return core.NoOp(), nil
	}
	return verdict.Proposal(snapshot, turnID, text), nil
}
