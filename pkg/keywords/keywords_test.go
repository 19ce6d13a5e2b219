package keywords

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestMatcher_Match(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		text  string
		want  bool
	}{
		{"no_words", nil, "/media/a.avi", false},
		{"empty_word_ignored", []string{""}, "/media/a.avi", false},
		{"extension_anywhere", []string{"mp3"}, "/music/Song.MP3.bak", true},
		{"upper_keyword", []string{"HOLIDAY"}, "/pics/holiday-2026.jpg", true},
		{"second_word", []string{"xyz", "movies"}, "/media/Movies/a.avi", true},
		{"no_match", []string{"xyz"}, "/media/a.avi", false},
		{"fold", []string{"STRASSE"}, "/maps/hauptstraße.png", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.words...)
			assert.Equal(t, tt.want, m.Match(tt.text))
		})
	}
}

func TestMatcher_Len(t *testing.T) {
	assert.Equal(t, 0, New().Len())
	assert.Equal(t, 2, New("a", "", "b").Len())
}
