package ai

import (
	"context"
	"strings"
	"testing"

	"inspectgrid/internal/model"
)

func TestMergeColumnsKeepsFallback(t *testing.T) {
	fallback := []model.Column{
		{ID: "site", Label: "site", Type: model.TypeString, Editable: true},
		{ID: "due", Label: "due", Type: model.TypeString, Editable: true},
	}
	resp := aiResponse{Columns: []aiColumn{
		{ID: "due", Label: "תאריך יעד", Type: "date"},
		{ID: "site", Type: "geo"},
	}}
	got := mergeColumns(fallback, resp)
	if got[0].Type != model.TypeString || got[0].Label != "site" {
		t.Fatalf("unknown type should keep fallback: %+v", got[0])
	}
	if got[1].Type != model.TypeDate || got[1].Label != "תאריך יעד" || !got[1].Editable {
		t.Fatalf("merged = %+v", got[1])
	}
}

func TestPromptListsColumns(t *testing.T) {
	p := buildColumnsPrompt([]model.Column{{ID: "a"}, {ID: "b"}}, []map[string]string{{"a": "1"}})
	if !strings.Contains(p, "Columns: a, b") || !strings.Contains(p, `{"a":"1"}`) {
		t.Fatalf("prompt = %q", p)
	}
}

func TestDisabledWithoutKey(t *testing.T) {
	c := NewOpenAIClient("", "", "gpt-4o-mini", 0)
	if _, err := c.InferColumns(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error without api key")
	}
}
