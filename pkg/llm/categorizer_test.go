package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/civicfeed/pkg/config"
	"github.com/umputun/civicfeed/pkg/domain"
)

func chatServer(t *testing.T, replies ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		n := int(calls.Add(1)) - 1
		if n >= len(replies) {
			n = len(replies) - 1
		}
		if replies[n] == "" {
			http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusInternalServerError)
			return
		}
		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: replies[n]}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func testConfig(url string) config.LLMConfig {
	return config.LLMConfig{Enabled: true, Endpoint: url + "/v1", APIKey: "test-key", Model: "gpt-4o-mini",
		Temperature: 0.1, MaxTokens: 300, Timeout: 5 * time.Second, BatchSize: 20}
}

var library = domain.CalendarSource{Name: "Springfield Library", City: "Springfield", State: "IL", Type: domain.OrgLibrary}

func TestCategorizer_Categorize(t *testing.T) {
	server, calls := chatServer(t, `Sure, here you go:
[{"index": 1, "category": "Family"}, {"index": 2, "category": "health"}, {"index": 7, "category": "arts"}]`)
	c := NewCategorizer(testConfig(server.URL))

	events := []domain.Event{
		{Title: "Toddler Storytime", Category: domain.CategoryLibrary},
		{Title: "Blood Drive in the lobby", Category: domain.CategoryLibrary},
		{Title: "Board meeting", Category: domain.CategoryLibrary},
	}
	res := c.Categorize(context.Background(), library, events)
	require.Len(t, res, 3)
	assert.Equal(t, domain.CategoryFamily, res[0].Category)
	assert.Equal(t, domain.CategoryHealth, res[1].Category)
	assert.Equal(t, domain.CategoryLibrary, res[2].Category, "no result for the event, category kept")
	assert.Equal(t, domain.CategoryLibrary, events[0].Category, "input not modified")
	assert.Equal(t, int32(1), calls.Load())
}

func TestCategorizer_IgnoresUnknownCategories(t *testing.T) {
	server, _ := chatServer(t, `[{"index": 1, "category": "sports"}, {"index": 2, "category": "recreation"}]`)
	c := NewCategorizer(testConfig(server.URL))

	res := c.Categorize(context.Background(), library, []domain.Event{
		{Title: "Softball league", Category: domain.CategoryCommunity},
		{Title: "Nature walk", Category: domain.CategoryCommunity},
	})
	assert.Equal(t, domain.CategoryCommunity, res[0].Category)
	assert.Equal(t, domain.CategoryRecreation, res[1].Category)
}

func TestCategorizer_Batches(t *testing.T) {
	var prompts []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req openai.ChatCompletionRequest
		require.NoError(t, json.Unmarshal(body, &req))
		prompts = append(prompts, req.Messages[1].Content)
		resp := openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: `[{"index": 1, "category": "arts"}]`}}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.BatchSize = 2
	c := NewCategorizer(cfg)

	events := make([]domain.Event, 5)
	for i := range events {
		events[i] = domain.Event{Title: "Event", Category: domain.CategoryLibrary}
	}
	res := c.Categorize(context.Background(), library, events)
	require.Len(t, prompts, 3)
	assert.Contains(t, prompts[0], "Organization: Springfield Library (library) in Springfield, IL")
	assert.Contains(t, prompts[0], "2. Title: Event")
	assert.NotContains(t, prompts[0], "3. Title")

	var arts int
	for _, e := range res {
		if e.Category == domain.CategoryArts {
			arts++
		}
	}
	assert.Equal(t, 3, arts, "first event of every batch updated")
}

func TestCategorizer_FailureKeepsCategories(t *testing.T) {
	t.Run("invalid json retried then given up", func(t *testing.T) {
		server, calls := chatServer(t, "I cannot help with that")
		c := NewCategorizer(testConfig(server.URL))
		events := []domain.Event{{Title: "Concert", Category: domain.CategoryArts}}
		res := c.Categorize(context.Background(), library, events)
		assert.Equal(t, events, res)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("invalid json then valid", func(t *testing.T) {
		server, calls := chatServer(t, "[not json", `[{"index": 1, "category": "health"}]`)
		c := NewCategorizer(testConfig(server.URL))
		res := c.Categorize(context.Background(), library, []domain.Event{{Title: "Yoga", Category: domain.CategoryLibrary}})
		assert.Equal(t, domain.CategoryHealth, res[0].Category)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("server error", func(t *testing.T) {
		server, _ := chatServer(t, "")
		c := NewCategorizer(testConfig(server.URL))
		events := []domain.Event{{Title: "Concert", Category: domain.CategoryArts}}
		assert.Equal(t, events, c.Categorize(context.Background(), library, events))
	})
}

func TestParseResponse(t *testing.T) {
	res, err := parseResponse("```json\n[{\"index\": 2, \"category\": \"arts\"}]\n```")
	require.NoError(t, err)
	assert.Equal(t, []result{{Index: 2, Category: "arts"}}, res)

	_, err = parseResponse("no array here")
	require.Error(t, err)
	_, err = parseResponse("[oops]")
	require.Error(t, err)
}
