package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/brainchat/internal/core"
	"github.com/sandevgo/brainchat/pkg/conv"
)

const createdAtLayout = "2006-01-02 15:04:05"

// RenderMemory prepares a memory item for display. Content that parses as
// JSON is pretty-printed; HTML is flattened to text; anything else is kept.
func RenderMemory(item core.MemoryItem) core.RenderedMemory {
	out := core.RenderedMemory{
		Content:    item.Content,
		Importance: fmt.Sprintf("%.2f", item.Importance),
		CreatedAt:  item.CreatedAt,
	}

	if pretty, ok := prettyJSON(item.Content); ok {
		out.Content = pretty
		out.IsJSON = true
	} else {
		out.Content = conv.HTMLToText(item.Content)
	}

	if t, ok := item.CreatedTime(); ok {
		out.CreatedAt = t.In(time.Local).Format(createdAtLayout)
	}
	return out
}

func RenderMemories(items []core.MemoryItem) []core.RenderedMemory {
	out := make([]core.RenderedMemory, 0, len(items))
	for _, item := range items {
		out = append(out, RenderMemory(item))
	}
	return out
}

func prettyJSON(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || !json.Valid([]byte(trimmed)) {
		return "", false
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(trimmed), "", "  "); err != nil {
		return "", false
	}
	return buf.String(), true
}
