package models

import "testing"

func TestContentHashNormalizes(t *testing.T) {
	a := ContentHash("The  Quick\nBrown Fox")
	b := ContentHash("the quick brown fox")
	if a != b {
		t.Errorf("hashes differ for equivalent text: %q vs %q", a, b)
	}
	if len(a) != 16 {
		t.Errorf("hash length = %d, want 16 hex chars", len(a))
	}
	if a == ContentHash("the quick brown dog") {
		t.Error("distinct texts collided")
	}
}

func TestNewSegment(t *testing.T) {
	seg := NewSegment("paper.pdf", 3, "Results", "Measured outcomes of the trial.")
	if seg.Hash == "" {
		t.Error("segment built without a content hash")
	}
	if !seg.Valid() {
		t.Error("well-formed segment reported invalid")
	}
}

func TestSegmentValid(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		want bool
	}{
		{name: "ok", seg: Segment{Page: 1, Text: "body"}, want: true},
		{name: "zero page", seg: Segment{Page: 0, Text: "body"}, want: false},
		{name: "blank text", seg: Segment{Page: 2, Text: "   "}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seg.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
