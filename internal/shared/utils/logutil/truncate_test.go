package logutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short body kept", `{"rates":{}}`, 64, `{"rates":{}}`},
		{"exact length kept", "abcde", 5, "abcde"},
		{"long body cut", "<html>bad gateway</html>", 6, "<html>..."},
		{"zero limit", "anything", 0, "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateForLog(tt.input, tt.maxLen))
		})
	}
}
