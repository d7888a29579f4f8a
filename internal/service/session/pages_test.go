package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageCount(t *testing.T) {
	tests := []struct {
		field string
		want  int
	}{
		{"3", 3},
		{"", 3},
		{"abc", 3},
		{"0", 3},
		{"-0", 3},
		{"10", 10},
		{"  8", 8},
		{"5abc", 5},
		{"2.9", 2},
		{"+4", 4},
		{"-2", -2},
		{"-", 3},
		{"99999999999999999999999", 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePageCount(tt.field, 3), "field %q", tt.field)
	}
}
