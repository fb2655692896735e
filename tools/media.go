package tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ImageAnalyzer answers questions about an image through an
// OpenAI-compatible vision chat endpoint.
type ImageAnalyzer struct {
	client *openai.Client
	model  string
}

// NewImageAnalyzer creates the analyze_image tool on top of an existing
// vision-capable client.
func NewImageAnalyzer(client *openai.Client, model string) *ImageAnalyzer {
	return &ImageAnalyzer{client: client, model: model}
}

func (a *ImageAnalyzer) Name() string {
	return "analyze_image"
}

func (a *ImageAnalyzer) Description() string {
	return "Answer a question about an image. The image may be given as an " +
		"http(s) URL or a local file path."
}

func (a *ImageAnalyzer) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"image": map[string]any{
				"type":        "string",
				"description": "URL or local path of the image to analyze.",
			},
			"question": map[string]any{
				"type":        "string",
				"description": "The question to answer about the image.",
			},
		},
		"required":             []string{"image", "question"},
		"additionalProperties": false,
	}
}

// imageURL turns a local path into a base64 data URL; http(s) URLs pass
// through untouched.
func imageURL(image string) (string, error) {
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image, nil
	}
	data, err := os.ReadFile(image)
	if err != nil {
		return "", fmt.Errorf("failed to read image file: %w", err)
	}
	mime := "image/png"
	switch strings.ToLower(filepath.Ext(image)) {
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".gif":
		mime = "image/gif"
	case ".webp":
		mime = "image/webp"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)), nil
}

func (a *ImageAnalyzer) Call(ctx context.Context, raw json.RawMessage) (string, error) {
	var args struct {
		Image    string `json:"image"`
		Question string `json:"question"`
	}
	if err := unmarshalArgs(raw, &args); err != nil {
		return "", err
	}

	u, err := imageURL(args.Image)
	if err != nil {
		return "", err
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: args.Question},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: u, Detail: openai.ImageURLDetailAuto},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("vision request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("vision endpoint returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// AudioTranscriber converts speech in an audio file to text with a
// Whisper-style transcription model.
type AudioTranscriber struct {
	client *openai.Client
	model  string
}

// NewAudioTranscriber creates the transcribe_audio tool. An empty model
// selects whisper-1.
func NewAudioTranscriber(client *openai.Client, model string) *AudioTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &AudioTranscriber{client: client, model: model}
}

func (t *AudioTranscriber) Name() string {
	return "transcribe_audio"
}

func (t *AudioTranscriber) Description() string {
	return "Transcribe speech from a local audio file to text."
}

func (t *AudioTranscriber) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"file_path": map[string]any{
				"type":        "string",
				"description": "Path of the audio file to transcribe.",
			},
		},
		"required":             []string{"file_path"},
		"additionalProperties": false,
	}
}

func (t *AudioTranscriber) Call(ctx context.Context, raw json.RawMessage) (string, error) {
	var args struct {
		FilePath string `json:"file_path"`
	}
	if err := unmarshalArgs(raw, &args); err != nil {
		return "", err
	}
	if _, err := os.Stat(args.FilePath); err != nil {
		return "", fmt.Errorf("audio file not accessible: %w", err)
	}

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: args.FilePath,
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return resp.Text, nil
}
