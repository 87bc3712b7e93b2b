// Package ai wraps the remote text-generation collaborator. The
// pipeline only sees its envelope: prompt in, structured table or
// error out.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ppx007/smart-attendance/internal/models"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Config holds the collaborator's API settings
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

// TableGenerator asks the model to turn an attendance instruction into
// a structured table
type TableGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

// NewTableGenerator creates a generator from config
func NewTableGenerator(cfg Config, logger *zap.Logger) *TableGenerator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4
	}
	return &TableGenerator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      logger,
	}
}

const systemPrompt = "You are an expert in Chinese attendance management (考勤管理). " +
	"Given an instruction, design the table it asks for. " +
	"Return JSON: {\"table_name\": string, \"columns\": [string], \"rows\": [[string]]}. " +
	"Column titles must be in Chinese. Rows may be empty when the instruction names no data."

// GenerateTable sends one request and parses the structured table. A
// single outstanding request per call, no retries; callers wanting
// timeouts wrap ctx.
func (g *TableGenerator) GenerateTable(ctx context.Context, prompt string) (*models.GeneratedTable, error) {
	g.logger.Info("Requesting AI table generation", zap.String("prompt", prompt))

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call completion API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}

	content := resp.Choices[0].Message.Content

	var table models.GeneratedTable
	if err := json.Unmarshal([]byte(content), &table); err != nil {
		g.logger.Error("Failed to parse generated table",
			zap.Error(err),
			zap.String("content", content))
		return nil, fmt.Errorf("failed to parse generated table: %w", err)
	}

	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("generated table has no columns")
	}

	g.logger.Info("AI table generated",
		zap.String("table_name", table.TableName),
		zap.Int("columns", len(table.Columns)),
		zap.Int("rows", len(table.Rows)))

	return &table, nil
}
