package fingerprint

import "testing"

func TestComputeDeterminism(t *testing.T) {
	t.Parallel()

	first := Compute("OpenAI Blog", "https://openai.com/blog/gpt5")
	second := Compute("OpenAI Blog", "https://openai.com/blog/gpt5")
	if first != second {
		t.Fatalf("repeated calls diverged: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected sha256 hex digest, got %d chars", len(first))
	}
}

func TestComputeNormalization(t *testing.T) {
	t.Parallel()

	base := Compute("OpenAI Blog", "GPT-5 launch")

	variants := []struct {
		source string
		key    string
	}{
		{"  OpenAI Blog  ", "GPT-5 launch"},
		{"openai blog", "gpt-5 launch"},
		{"OpenAI Blog", "GPT-5\t launch "},
		{"OPENAI   BLOG", "GPT-5\nlaunch"},
	}

	for _, v := range variants {
		if got := Compute(v.source, v.key); got != base {
			t.Fatalf("variant (%q, %q) fingerprinted differently", v.source, v.key)
		}
	}
}

func TestComputeDistinguishesSources(t *testing.T) {
	t.Parallel()

	a := Compute("OpenAI Blog", "https://example.com/post")
	b := Compute("Anthropic News", "https://example.com/post")
	if a == b {
		t.Fatal("same key from different sources must not collide")
	}
}

func TestComputeEmptyRawKey(t *testing.T) {
	t.Parallel()

	first := Compute("Cursor AI", "")
	second := Compute("Cursor AI", "")
	if first != second {
		t.Fatal("empty raw key must still be deterministic")
	}
	if first == Compute("Cursor AI", "changelog") {
		t.Fatal("empty and non-empty raw keys must differ")
	}
}

func TestSeparatorNotAmbiguous(t *testing.T) {
	t.Parallel()

	// Source/key boundary must not be forgeable by shifting characters.
	if Compute("a b", "c") == Compute("a", "b c") {
		t.Fatal("boundary between source and key collapsed")
	}
}
