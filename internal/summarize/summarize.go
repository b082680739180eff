// Package summarize turns a price comparison report into shopping advice.
package summarize

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	defaultMaxTokens   = 500
	defaultTemperature = 0.7
)

// Summarizer turns report text into prose insights
type Summarizer interface {
	Summarize(ctx context.Context, report string) (string, error)
}

// Prompt builds the analysis prompt around a comparison report
func Prompt(report string) string {
	return fmt.Sprintf(`You are a tech shopping assistant. Analyze this price comparison data and provide insights about the best deals, price differences, and shopping recommendations:

%s

Please provide a concise analysis focusing on:
1. Best value options
2. Price differences between stores
3. Shopping recommendations
4. Any notable deals or savings

Analysis:`, report)
}

// AnthropicConfig configures the Anthropic-backed summarizer
type AnthropicConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int64
	// Temperature defaults to 0.7 when nil; zero is a valid setting
	Temperature *float64
	// Options are appended to the SDK client options
	Options []option.RequestOption
}

// Anthropic summarizes through the Messages API
type Anthropic struct {
	client      sdk.Client
	model       string
	maxTokens   int64
	temperature float64
	log         *zap.Logger
}

// NewAnthropic creates a summarizer backed by the SDK
func NewAnthropic(cfg AnthropicConfig, log *zap.Logger) *Anthropic {
	opts := append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, cfg.Options...)
	a := &Anthropic{
		client:      sdk.NewClient(opts...),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: defaultTemperature,
		log:         log.Named("summarizer"),
	}
	if a.maxTokens <= 0 {
		a.maxTokens = defaultMaxTokens
	}
	if cfg.Temperature != nil {
		a.temperature = *cfg.Temperature
	}
	return a
}

// Summarize implements Summarizer
func (a *Anthropic) Summarize(ctx context.Context, report string) (string, error) {
	msg, err := a.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(a.model),
		MaxTokens:   a.maxTokens,
		Temperature: sdk.Float(a.temperature),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(Prompt(report))),
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "anthropic: create message")
	}

	a.log.Info("Analysis generated",
		zap.String("model", string(msg.Model)),
		zap.Int64("input_tokens", msg.Usage.InputTokens),
		zap.Int64("output_tokens", msg.Usage.OutputTokens))

	var parts []string
	for _, block := range msg.Content {
		if block.Type == "text" && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	text := strings.TrimSpace(strings.Join(parts, "\n"))
	if text == "" {
		return "", eris.New("anthropic: empty analysis")
	}
	return text, nil
}
