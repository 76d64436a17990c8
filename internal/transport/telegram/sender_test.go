package telegram

import (
	"strings"
	"testing"
)

func TestSplitHTML(t *testing.T) {
	t.Run("short text single chunk", func(t *testing.T) {
		chunks := splitHTML("It is 20°C in Paris", 100)
		if len(chunks) != 1 {
			t.Fatalf("chunks = %d, want 1", len(chunks))
		}
	})

	t.Run("splits at newline", func(t *testing.T) {
		text := strings.Repeat("line one\n", 20)
		chunks := splitHTML(text, 100)

		if len(chunks) < 2 {
			t.Fatalf("chunks = %d, want >= 2", len(chunks))
		}
		for i, c := range chunks {
			if len(c) > 100 {
				t.Errorf("chunk %d is %d bytes, over the limit", i, len(c))
			}
		}
	})

	t.Run("no newline hard split", func(t *testing.T) {
		chunks := splitHTML(strings.Repeat("a", 250), 100)
		if len(chunks) != 3 {
			t.Fatalf("chunks = %d, want 3", len(chunks))
		}
	})

	t.Run("content preserved", func(t *testing.T) {
		text := strings.TrimSpace(strings.Repeat("forecast for tomorrow\n", 30))
		chunks := splitHTML(text, 120)

		joined := strings.Join(chunks, "\n")
		if strings.ReplaceAll(joined, "\n", "") != strings.ReplaceAll(text, "\n", "") {
			t.Error("splitHTML dropped content")
		}
	})
}
