// Package openai provides a classifier delegate backed by the OpenAI Chat
// Completions API. It implements core.Classifier; see the anthropic sibling
// package for the rationale. Verdicts pass through the shared structural
// guards, so the model cannot corrupt chains or fabricate entities.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/memtrail/classifier"
	"github.com/hupe1980/memtrail/core"
)

// Options configure the OpenAI classifier. Temperature is pinned to zero for
// a deterministic decision.
type Options struct {
	Model               string
	MaxCompletionTokens int64
}

// Classifier wraps the OpenAI Chat Completions API behind core.Classifier.
type Classifier struct {
	client *openai.Client
	opts   Options
}

var _ core.Classifier = (*Classifier)(nil)

// New creates an OpenAI-backed classifier using the official client.
func New(optFns ...func(o *Options)) *Classifier {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates an OpenAI-backed classifier from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Classifier {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		MaxCompletionTokens: 1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Classifier{client: client, opts: opts}
}

// Classify implements core.Classifier by requesting a strict JSON verdict and
// converting it through the shared structural guards.
func (c *Classifier) Classify(ctx context.Context, snapshot *core.Profile, turnID, text string) (core.Proposal, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.opts.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(classifier.SystemPrompt),
			openai.UserMessage(classifier.BuildUserPrompt(snapshot, text)),
		},
		Temperature:         openai.Float(0),
		MaxCompletionTokens: openai.Int(c.opts.MaxCompletionTokens),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return core.Proposal{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return core.NoOp(), nil
	}

	verdict, err := classifier.ParseVerdict(resp.Choices[0].Message.Content)
	if err != nil {
		// Unparseable output asserts nothing.
		return core.NoOp(), nil
	}
	return verdict.Proposal(snapshot, turnID, text), nil
}
