package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	altai "github.com/sashabaranov/go-openai"

	"inspectgrid/internal/model"
)

// OpenAIClient asks a chat model to label and type columns.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
}

func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{apiKey: apiKey, baseURL: baseURL, model: model, timeout: timeout}
}

type aiColumn struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Editable *bool  `json:"editable"`
}

type aiResponse struct {
	Columns    []aiColumn `json:"columns"`
	Confidence float64    `json:"confidence"`
}

// InferColumns returns columns for keys, in key order. Keys the model
// omits or types it invents keep the fallback column.
func (c *OpenAIClient) InferColumns(ctx context.Context, fallback []model.Column, sample []map[string]string) ([]model.Column, error) {
	if c == nil || c.apiKey == "" {
		return nil, errors.New("openai disabled")
	}
	prompt := buildColumnsPrompt(fallback, sample)
	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	resp, err := c.call(ctx2, prompt)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	var out aiResponse
	if err := json.Unmarshal([]byte(resp), &out); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	return mergeColumns(fallback, out), nil
}

func (c *OpenAIClient) call(ctx context.Context, prompt string) (string, error) {
	cfg := altai.DefaultConfig(c.apiKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	cli := altai.NewClientWithConfig(cfg)
	resp, err := cli.CreateChatCompletion(ctx, altai.ChatCompletionRequest{
		Model: c.model,
		Messages: []altai.ChatCompletionMessage{
			{Role: altai.ChatMessageRoleSystem, Content: "You describe tabular data columns and return ONLY strict JSON following the specified contract. No prose, no code fences."},
			{Role: altai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature:    0.2,
		ResponseFormat: &altai.ChatCompletionResponseFormat{Type: altai.ChatCompletionResponseFormatTypeJSONObject},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildColumnsPrompt(cols []model.Column, sample []map[string]string) string {
	rows := min(len(sample), 20)
	var b strings.Builder
	b.WriteString("Given the columns and sample rows below, return ONLY strict JSON matching this contract: ")
	b.WriteString(`{columns:[{id,label,type,editable}], confidence}. `)
	b.WriteString("type is one of string|number|boolean|date|email|url. Keep labels in the language of the data (Hebrew stays Hebrew).\n")
	b.WriteString("Columns: ")
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.ID)
	}
	b.WriteString("\nRows:\n")
	for i := 0; i < rows; i++ {
		line, _ := json.Marshal(sample[i])
		b.Write(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func mergeColumns(fallback []model.Column, a aiResponse) []model.Column {
	byID := make(map[string]int, len(a.Columns))
	for i, c := range a.Columns {
		byID[c.ID] = i
	}
	out := make([]model.Column, len(fallback))
	for i, col := range fallback {
		out[i] = col
		j, ok := byID[col.ID]
		if !ok {
			continue
		}
		got := a.Columns[j]
		if strings.TrimSpace(got.Label) != "" {
			out[i].Label = got.Label
		}
		if t := model.ColumnType(got.Type); t.Known() {
			out[i].Type = t
		}
		if got.Editable != nil {
			out[i].Editable = *got.Editable
		}
	}
	return out
}
