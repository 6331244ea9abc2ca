package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/imkonsowa/restaurants-ordering/config"
	"github.com/sashabaranov/go-openai"
)

// ImageGenerator returns a URL for an image rendered from prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Images talks to an OpenAI compatible images endpoint.
type Images struct {
	cfg    config.Images
	client *openai.Client
}

func NewImages(cfg config.Images) *Images {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Images{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientCfg),
	}
}

func (i *Images) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := i.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          i.cfg.Model,
		N:              1,
		Size:           i.cfg.Size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("image service returned no image")
	}

	return resp.Data[0].URL, nil
}
