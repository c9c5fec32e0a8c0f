package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"wooltrace/internal/config"
	"wooltrace/internal/port"
)

// systemPrompt frames every assistant question in the platform's domain.
const systemPrompt = "You are the WoolTrace assistant. You help farmers, mill operators, " +
	"inspectors and buyers with questions about wool batches, processing stages, " +
	"quality inspections, pricing and orders. Answer briefly and concretely."

type geminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider creates a Gemini-backed ChatProvider.
func NewGeminiProvider(ctx context.Context, cfg config.ChatConfig) (port.ChatProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-flash-latest"
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) Reply(ctx context.Context, message string) (string, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String(), nil
}

// Close closes the underlying client connection.
func (p *geminiProvider) Close() {
	if p.client != nil {
		p.client.Close()
	}
}

type staticProvider struct{}

// NewStaticProvider returns a ChatProvider used when no Gemini API key is
// configured. It answers with a fixed help message so the endpoint stays up.
func NewStaticProvider() port.ChatProvider {
	return &staticProvider{}
}

func (p *staticProvider) Reply(_ context.Context, message string) (string, error) {
	log.Printf("chat: no provider configured, answering statically (message %q)", message)
	return "The assistant is not configured on this deployment. " +
		"Ask an administrator to set the chat API key.", nil
}
