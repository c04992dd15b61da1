package chunker_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/valpere/linguacast/internal/chunker"
)

func TestChunk_ShortText(t *testing.T) {
	text := "Hello, world!"
	chunks := chunker.Chunk(text, 100)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("expected %q, got %q", text, chunks[0])
	}
}

func TestChunk_Unlimited(t *testing.T) {
	text := strings.Repeat("word ", 500)
	chunks := chunker.Chunk(text, 0)
	if len(chunks) != 1 {
		t.Errorf("expected 1 chunk when maxRunes=0, got %d", len(chunks))
	}
}

func TestChunk_BlankText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		if chunks := chunker.Chunk(text, 100); len(chunks) != 0 {
			t.Errorf("Chunk(%q) = %v, want no chunks", text, chunks)
		}
	}
}

func TestChunk_SentenceBoundary(t *testing.T) {
	text := "First sentence ends here. Second sentence follows. Third sentence."
	chunks := chunker.Chunk(text, 40)
	if len(chunks) < 2 {
		t.Fatalf("expected ≥2 chunks, got %d", len(chunks))
	}
	if chunks[0] != "First sentence ends here." {
		t.Errorf("expected cut after first sentence, got %q", chunks[0])
	}
}

func TestChunk_ClauseBoundary(t *testing.T) {
	text := "When the rain stops, we will walk to the old harbour and watch the boats"
	chunks := chunker.Chunk(text, 30)
	if chunks[0] != "When the rain stops," {
		t.Errorf("expected cut after clause, got %q", chunks[0])
	}
}

func TestChunk_DecimalNotSplit(t *testing.T) {
	text := "Pi is about 3.14159 and that is enough precision for today"
	chunks := chunker.Chunk(text, 25)
	for _, c := range chunks {
		if strings.HasSuffix(c, "3.") {
			t.Errorf("decimal number was split: %v", chunks)
		}
	}
}

func TestChunk_WordBoundary(t *testing.T) {
	text := "one two three four five six seven eight nine ten"
	chunks := chunker.Chunk(text, 20)
	if len(chunks) < 2 {
		t.Fatalf("expected ≥2 chunks, got %d", len(chunks))
	}
	if got := strings.Join(chunks, " "); got != text {
		t.Errorf("expected words to survive chunking, got %q", got)
	}
}

func TestChunk_CJK(t *testing.T) {
	text := "今天天气很好。我们去公园散步吧！然后一起吃晚饭。"
	chunks := chunker.Chunk(text, 10)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "今天天气很好。" {
		t.Errorf("unexpected first chunk %q", chunks[0])
	}
}

func TestChunk_HardCut(t *testing.T) {
	text := strings.Repeat("a", 250)
	chunks := chunker.Chunk(text, 100)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if strings.Join(chunks, "") != text {
		t.Error("hard cut lost characters")
	}
}

func TestChunk_RespectsLimit(t *testing.T) {
	text := strings.Repeat("Съешь же ещё этих мягких французских булок, да выпей чаю. ", 20)
	for _, c := range chunker.Chunk(text, 100) {
		if n := utf8.RuneCountInString(c); n > 100 {
			t.Errorf("chunk has %d runes, want ≤100: %q", n, c)
		}
		if c != strings.TrimSpace(c) {
			t.Errorf("chunk has leading/trailing whitespace: %q", c)
		}
	}
}

func TestChunk_DropsPunctuationOnlyPieces(t *testing.T) {
	chunks := chunker.Chunk("Hello there friend. ... ... ...", 20)
	for _, c := range chunks {
		if strings.Trim(c, ". ") == "" {
			t.Errorf("punctuation-only chunk kept: %v", chunks)
		}
	}
}
