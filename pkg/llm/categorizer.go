// Package llm refines event categories with an OpenAI-compatible model
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/civicfeed/pkg/config"
	"github.com/umputun/civicfeed/pkg/content"
	"github.com/umputun/civicfeed/pkg/domain"
)

// Categorizer asks an LLM to pick the taxonomy category for each event.
// Failures never drop events, the categories assigned before the call are kept.
type Categorizer struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewCategorizer creates a new LLM categorizer
func NewCategorizer(cfg config.LLMConfig) *Categorizer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}

	return &Categorizer{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemPrompt(),
	}
}

func systemPrompt() string {
	names := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		names = append(names, string(c))
	}
	return `You categorize local community events published by cities, schools, chambers of commerce, libraries and parks departments.
Pick exactly one category per event from this list: ` + strings.Join(names, ", ") + `.

Each result should contain:
- index: the event number from the request
- category: one category from the list, lowercase

Use the organization type as a hint only when the title and description say nothing specific.
Respond with a JSON array of result objects and nothing else.`
}

type result struct {
	Index    int    `json:"index"`
	Category string `json:"category"`
}

// Categorize refines categories batch by batch. A batch that fails keeps its current categories.
func (c *Categorizer) Categorize(ctx context.Context, src domain.CalendarSource, events []domain.Event) []domain.Event {
	res := make([]domain.Event, len(events))
	copy(res, events)

	for start := 0; start < len(res); start += c.config.BatchSize {
		end := min(start+c.config.BatchSize, len(res))
		batch := res[start:end]
		results, err := c.categorizeBatch(ctx, src, batch)
		if err != nil {
			log.Printf("[WARN] llm categorization of %d events from %s failed: %v", len(batch), src.Name, err)
			continue
		}
		applied := 0
		for _, r := range results {
			cat := domain.Category(strings.ToLower(strings.TrimSpace(r.Category)))
			if r.Index < 1 || r.Index > len(batch) || !cat.Valid() {
				continue
			}
			batch[r.Index-1].Category = cat
			applied++
		}
		log.Printf("[DEBUG] llm categorized %d/%d events from %s", applied, len(batch), src.Name)
	}
	return res
}

func (c *Categorizer) categorizeBatch(ctx context.Context, src domain.CalendarSource, events []domain.Event) ([]result, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	prompt := c.buildPrompt(src, events)

	// retry up to 3 times if we get invalid JSON
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		chatReq := openai.ChatCompletionRequest{
			Model:       c.config.Model,
			Temperature: float32(c.config.Temperature),
			MaxTokens:   c.config.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: c.systemMsg},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		}

		resp, err := c.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return nil, fmt.Errorf("llm request failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no response from llm")
		}

		results, err := parseResponse(resp.Choices[0].Message.Content)
		if err == nil {
			return results, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("failed after 3 attempts: %w", lastErr)
}

func (c *Categorizer) buildPrompt(src domain.CalendarSource, events []domain.Event) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Organization: %s (%s) in %s\n\n", src.Name, src.Type, src.Location()))
	sb.WriteString("Categorize these events:\n\n")
	for i, e := range events {
		sb.WriteString(fmt.Sprintf("%d. Title: %s\n", i+1, e.Title))
		if e.Description != "" {
			sb.WriteString(fmt.Sprintf("   Description: %s\n", content.Truncate(e.Description, 300)))
		}
		if e.Location != "" {
			sb.WriteString(fmt.Sprintf("   Location: %s\n", e.Location))
		}
		sb.WriteString(fmt.Sprintf("   Current category: %s\n\n", e.Category))
	}
	sb.WriteString("Respond with a JSON array of result objects.")
	return sb.String()
}

// parseResponse extracts the JSON array from the model output, surrounding prose is ignored
func parseResponse(text string) ([]result, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("no json array found in response")
	}
	var results []result
	if err := json.Unmarshal([]byte(text[start:end+1]), &results); err != nil {
		return nil, fmt.Errorf("failed to parse json array response: %w", err)
	}
	return results, nil
}
