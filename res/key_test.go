package res

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"data/foo", "data/foo"},
		{`data\inner\boom`, "data/inner/boom"},
		{`data\inner/boom`, "data/inner/boom"},
		{"./data//foo", "data/foo"},
		{"/data/foo/", "data/foo"},
		{"data/./inner/../foo", "data/foo"},
		{"", "."},
		{"/", "."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Key(tt.in), tt.in)
	}
}
