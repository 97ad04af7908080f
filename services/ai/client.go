package ai

import (
	"context"
	"errors"
	"fmt"
	"log"

	"edupilot/config"
	"edupilot/models"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/panjf2000/ants/v2"
	oai "github.com/sashabaranov/go-openai"
	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
)

var (
	// ErrUnavailable marks a capability that is not configured, failed, or
	// timed out. Always recoverable: callers fall back to deterministic
	// output, never to a failed request.
	ErrUnavailable = errors.New("ai capability unavailable")
	// ErrMalformed marks a capability response whose structure could not be
	// parsed. Treated identically to ErrUnavailable by callers.
	ErrMalformed = errors.New("malformed ai response")
)

const poolSize = 32

// Client wraps every external AI capability the pipeline consumes:
// text completion, audio transcription, and dialogue. Calls run on a shared
// worker pool so a slow capability call never blocks unrelated requests;
// the caller waits only on its own result and honors context cancellation.
type Client struct {
	llm       llms.Model
	oa        *oai.Client
	anthropic *anthropic.Client
	pool      *ants.Pool

	transcribeModel string
}

func NewClient(cfg *config.Config) (*Client, error) {
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create capability worker pool: %w", err)
	}

	c := &Client{
		pool:            pool,
		transcribeModel: cfg.TranscribeModel,
	}

	if cfg.HasOpenAI() {
		llm, err := lcopenai.New(
			lcopenai.WithModel(cfg.SummaryModel),
			lcopenai.WithToken(cfg.OpenAIAPIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		c.llm = llm
		c.oa = oai.NewClient(cfg.OpenAIAPIKey)
	} else {
		log.Printf("[WARN] OpenAI API key not configured, text and transcription capabilities run in fallback mode")
	}

	if cfg.HasAnthropic() {
		client := anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))
		c.anthropic = &client
	} else {
		log.Printf("[WARN] Anthropic API key not configured, dialogue capability runs in fallback mode")
	}

	return c, nil
}

func (c *Client) Close() {
	c.pool.Release()
}

// TextAvailable reports whether the completion capability is configured.
func (c *Client) TextAvailable() bool {
	return c.llm != nil
}

// TranscriptionAvailable reports whether the transcription capability is configured.
func (c *Client) TranscriptionAvailable() bool {
	return c.oa != nil
}

// DialogueAvailable reports whether the dialogue capability is configured.
func (c *Client) DialogueAvailable() bool {
	return c.anthropic != nil
}

// submit runs fn on the worker pool and waits for its result or ctx
// cancellation, whichever comes first. A cancelled wait reports
// ErrUnavailable so the caller degrades to its fallback synchronously.
func (c *Client) submit(ctx context.Context, fn func() (string, error)) (string, error) {
	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)

	if err := c.pool.Submit(func() {
		text, err := fn()
		done <- outcome{text: text, err: err}
	}); err != nil {
		return "", fmt.Errorf("worker pool rejected capability call (%v): %w", err, ErrUnavailable)
	}

	select {
	case out := <-done:
		return out.text, out.err
	case <-ctx.Done():
		return "", fmt.Errorf("capability call cancelled (%v): %w", ctx.Err(), ErrUnavailable)
	}
}

// Complete sends a system instruction plus user prompt to the text
// capability and returns the raw completion.
func (c *Client) Complete(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error) {
	if c.llm == nil {
		return "", fmt.Errorf("text capability not configured: %w", ErrUnavailable)
	}

	return c.submit(ctx, func() (string, error) {
		content := []llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, system),
			llms.TextParts(llms.ChatMessageTypeHuman, prompt),
		}
		resp, err := c.llm.GenerateContent(ctx, content,
			llms.WithTemperature(temperature),
			llms.WithMaxTokens(maxTokens),
		)
		if err != nil {
			return "", fmt.Errorf("completion call failed (%v): %w", err, ErrUnavailable)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("completion returned no choices: %w", ErrMalformed)
		}
		return resp.Choices[0].Content, nil
	})
}

// Transcribe converts an audio or video file to text via the transcription
// capability.
func (c *Client) Transcribe(ctx context.Context, filePath string) (string, error) {
	if c.oa == nil {
		return "", fmt.Errorf("transcription capability not configured: %w", ErrUnavailable)
	}

	return c.submit(ctx, func() (string, error) {
		resp, err := c.oa.CreateTranscription(ctx, oai.AudioRequest{
			Model:    c.transcribeModel,
			FilePath: filePath,
			Format:   oai.AudioResponseFormatText,
		})
		if err != nil {
			return "", fmt.Errorf("transcription call failed (%v): %w", err, ErrUnavailable)
		}
		return resp.Text, nil
	})
}

// Dialogue sends a system instruction, recent conversation turns, and the
// current user message to the dialogue capability and returns the reply.
func (c *Client) Dialogue(ctx context.Context, system string, history []models.ChatMessage, message string) (string, error) {
	if c.anthropic == nil {
		return "", fmt.Errorf("dialogue capability not configured: %w", ErrUnavailable)
	}

	return c.submit(ctx, func() (string, error) {
		messages := make([]anthropic.MessageParam, 0, len(history)+1)
		for _, msg := range history {
			switch msg.Role {
			case "user":
				messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
			case "assistant":
				messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
			}
		}
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(message)))

		resp, err := c.anthropic.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.ModelClaude4Sonnet20250514,
			MaxTokens: 1024,
			System:    []anthropic.TextBlockParam{{Text: system}},
			Messages:  messages,
		})
		if err != nil {
			return "", fmt.Errorf("dialogue call failed (%v): %w", err, ErrUnavailable)
		}

		var reply string
		for _, block := range resp.Content {
			if text, ok := block.AsAny().(anthropic.TextBlock); ok {
				reply += text.Text
			}
		}
		if reply == "" {
			return "", fmt.Errorf("dialogue returned no text content: %w", ErrMalformed)
		}
		return reply, nil
	})
}

// Recoverable reports whether err is a degraded-capability condition that
// should trigger a deterministic fallback rather than a failed request.
func Recoverable(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrMalformed)
}
