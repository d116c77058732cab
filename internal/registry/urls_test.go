package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChannelURL(t *testing.T) {
	tests := []struct {
		input  string
		handle string
		ok     bool
	}{
		{"https://youtube.com/@foo", "@foo", true},
		{"https://www.youtube.com/@foo/videos", "@foo", true},
		{"https://youtube.com/channel/XYZ", "@XYZ", true},
		{"https://youtube.com/c/SomeName", "@SomeName", true},
		{"https://youtube.com/user/legacyname", "@legacyname", true},
		{"https://www.youtube.com/@handle?si=abc", "@handle", true},
		{"@bar", "@bar", true},
		{"bar", "@bar", true},
		{"https://example.com/watch", "", false},
		{"not/a/channel", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			handle, ok := ParseChannelURL(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.handle, handle)
		})
	}
}
