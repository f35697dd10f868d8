package ai

import (
	"context"
	"fmt"

	"lorcana/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	images *ImageProcessor
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(geminiModel)

	model.ResponseMIMEType = responseMIMEType
	model.SetTemperature(aiTemperature)

	return &GeminiClient{
		client: client,
		model:  model,
		images: NewImageProcessor(),
	}, nil
}

func (g *GeminiClient) ParseRoundScreenshot(ctx context.Context, data []byte) (*models.RoundImport, error) {
	img, format, err := g.images.OptimizeForAI(data)
	if err != nil {
		return nil, err
	}

	prompt := []genai.Part{
		genai.ImageData(format, img),
		genai.Text(ParseRoundPrompt),
	}

	resp, err := g.model.GenerateContent(ctx, prompt...)
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from AI")
	}

	rawText, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response format")
	}

	return DecodeRound(string(rawText))
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}
