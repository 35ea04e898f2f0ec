package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/hanzi/internal/store"
)

func TestPrintLLMEvents(t *testing.T) {
	var buf bytes.Buffer
	printLLMEvents(&buf, nil)
	assert.Contains(t, buf.String(), "No LLM requests recorded.")

	buf.Reset()
	printLLMEvents(&buf, []store.LLMRequestEvent{
		{ID: 7, Timestamp: time.Now(), LLMRequestEventData: store.LLMRequestEventData{
			Purpose: "sentence", Model: "gpt-4o-mini", InputTokens: 1000, OutputTokens: 200, Success: true,
		}},
		{ID: 8, Timestamp: time.Now(), LLMRequestEventData: store.LLMRequestEventData{
			Purpose: "sentence", Model: "local-model", ErrorMessage: "rate limited",
		}},
	})
	out := buf.String()
	assert.Contains(t, out, "gpt-4o-mini")
	assert.Contains(t, out, "$0.0003")
	assert.Contains(t, out, "✗ rate limited")
	assert.Contains(t, out, "?")
}

func TestPrintLLMEvent(t *testing.T) {
	var buf bytes.Buffer
	printLLMEvent(&buf, &store.LLMRequestEvent{ID: 3, LLMRequestEventData: store.LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "sentence",
		RequestBody: "[user]\nhi\n\n", Success: true,
	}})
	out := buf.String()
	assert.Contains(t, out, "Provider:  openai")
	assert.Contains(t, out, "REQUEST")
	assert.Contains(t, out, "[user]\nhi")
	assert.Contains(t, out, "(not captured)")
	assert.NotContains(t, out, "Error:")
}

func TestPrintLLMUsage(t *testing.T) {
	var buf bytes.Buffer
	printLLMUsage(&buf,
		[]store.PurposeUsage{{Purpose: "sentence", Calls: 2, InputTokens: 100, OutputTokens: 50}},
		[]store.ModelUsage{
			{Model: "gpt-4o-mini", Calls: 1, InputTokens: 1_000_000},
			{Model: "mystery", Calls: 1},
		})
	out := buf.String()
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "$0.15")
	assert.Contains(t, out, "No price listed for: mystery")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "汉字", truncate("汉字学习", 2))
	assert.Equal(t, "abc", truncate("abc", 5))
}

func TestVersionString(t *testing.T) {
	assert.Contains(t, versionString(), "hanzi ")
	assert.Equal(t, "devel", orDevel("(devel)"))
	assert.Equal(t, "v1.2.0", orDevel("v1.2.0"))
}
