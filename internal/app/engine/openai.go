package engine

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAI transcribes audio through the OpenAI Whisper API.
type OpenAI struct {
	client   *openai.Client
	language string
}

// NewOpenAI creates the remote engine. The API key must be non-empty; the
// actual key validity is only discovered on first use.
func NewOpenAI(apiKey, language string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	return &OpenAI{client: openai.NewClient(apiKey), language: language}, nil
}

// Transcribe uploads the file to the Whisper API and returns the text.
func (o *OpenAI) Transcribe(ctx context.Context, inputFilePath string) (string, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: inputFilePath,
		Language: o.language,
	}
	resp, err := o.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("createTranscription failed: %w", err)
	}
	return resp.Text, nil
}
