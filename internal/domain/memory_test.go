package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeContent(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Hello", "Hello", true},
		{"  Hello world \n", "Hello world", true},
		{"", "", false},
		{"   ", "", false},
		{"\t\n", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeContent(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
	}
}

func TestNormalizeImage(t *testing.T) {
	assert.Nil(t, NormalizeImage(nil))

	blank := "  "
	assert.Nil(t, NormalizeImage(&blank))

	padded := "  https://cdn.test/a.png \n"
	got := NormalizeImage(&padded)
	if assert.NotNil(t, got) {
		assert.Equal(t, padded, *got)
	}
}

func TestParticipantIDs(t *testing.T) {
	m := &Memory{
		AuthorID: "a",
		Likes:    []MemoryLike{{UserID: "b"}, {UserID: "a"}},
		Comments: []MemoryComment{{AuthorID: "c"}, {AuthorID: "b"}},
	}

	assert.Equal(t, []string{"a", "b", "c"}, m.ParticipantIDs())
}
