package transpile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteForLoop(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "counting loop with increment",
			input: "for (var i = 0; i < 10; i++) {",
			want:  "for i in range(0, 10, 1): {",
		},
		{
			name:  "counting loop with decrement",
			input: "for (var i = 9; i >= 0; i--) {",
			want:  "for i in range(9, 0, -1): {",
		},
		{
			name:  "membership loop drops parens",
			input: "for (var f in list) {",
			want:  "for f in list: {",
		},
		{
			name:  "no declaration keyword",
			input: "for (i = 1; i < n; i++) {",
			want:  "for i in range(1, n, 1): {",
		},
		{
			name:  "indentation preserved",
			input: "  for (var j = 0; j < 5; j++) {",
			want:  "  for j in range(0, 5, 1): {",
		},
		{
			name:  "explicit step kept verbatim",
			input: "for (var i = 0; i < 10; i+=2) {",
			want:  "for i in range(0, 10, i+=2): {",
		},
		{
			name:  "no parens untouched",
			input: "for each item",
			want:  "for each item",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteForLoop(tt.input))
		})
	}
}
