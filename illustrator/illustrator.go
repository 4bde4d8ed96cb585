package illustrator

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Image is an inline image: base64 payload plus its MIME type, ready to be
// embedded as a data URL. No asset storage is involved.
type Image struct {
	MIME string
	B64  string
}

// DataURL renders the image for direct embedding in HTML.
func (i Image) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", i.MIME, i.B64)
}

// Generator produces a cover illustration for a post title.
type Generator interface {
	Generate(ctx context.Context, title string) (Image, error)
}

// OpenAIGenerator implements Generator with the openai-go images API.
// A missing API key is reported when a generation is attempted, not at
// construction.
type OpenAIGenerator struct {
	Model   string
	APIKey  string
	BaseURL string
}

func NewOpenAIGenerator(model, apiKey, baseURL string) (*OpenAIGenerator, error) {
	if model == "" {
		return nil, errors.New("image model is required")
	}
	return &OpenAIGenerator{Model: model, APIKey: apiKey, BaseURL: baseURL}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, title string) (Image, error) {
	if g.APIKey == "" {
		return Image{}, errors.New("openai api key missing; set OPENAI_API_KEY")
	}

	opts := []option.RequestOption{option.WithAPIKey(g.APIKey)}
	if g.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(g.BaseURL))
	}
	client := openai.NewClient(opts...)

	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         BuildImagePrompt(title),
		Model:          openai.ImageModel(g.Model),
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize1024x1024,
		Quality:        openai.ImageGenerateParamsQualityHD,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	})
	if err != nil {
		return Image{}, fmt.Errorf("image generation failed: %w", err)
	}
	if resp == nil || len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return Image{}, errors.New("image generation returned no image payload")
	}
	return Image{MIME: "image/png", B64: resp.Data[0].B64JSON}, nil
}

// BuildImagePrompt constrains the illustration to the blog's visual
// identity: minimalist editorial style, no text baked into the image.
func BuildImagePrompt(title string) string {
	return fmt.Sprintf(
		"Ilustração editorial minimalista para um artigo sobre finanças intitulado %q. "+
			"Estilo clean, cores sóbrias, formas geométricas simples. Sem nenhum texto na imagem.",
		title,
	)
}
