package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryItem_CreatedTime(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantOK  bool
		wantDay int
	}{
		{name: "naive iso with micros", raw: "2024-05-01T12:34:56.789012", wantOK: true, wantDay: 1},
		{name: "naive iso", raw: "2024-05-02T12:34:56", wantOK: true, wantDay: 2},
		{name: "rfc3339", raw: "2024-05-03T12:34:56Z", wantOK: true, wantDay: 3},
		{name: "space separated", raw: "2024-05-04 08:00:00", wantOK: true, wantDay: 4},
		{name: "garbage", raw: "yesterday", wantOK: false},
		{name: "empty", raw: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MemoryItem{CreatedAt: tt.raw}.CreatedTime()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantDay, got.Day())
				assert.Equal(t, time.May, got.Month())
			}
		})
	}
}
