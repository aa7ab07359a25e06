package source

import (
	"testing"
)

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "overlapping spans",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 15, End: 30},
			expected: Span{File: 1, Start: 10, End: 30},
		},
		{
			name:     "other inside",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 12, End: 14},
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "different files keep receiver",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 2, Start: 0, End: 40},
			expected: Span{File: 1, Start: 10, End: 20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Fatalf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpanLenAndContains(t *testing.T) {
	s := Span{File: 3, Start: 4, End: 9}
	if s.Len() != 5 {
		t.Fatalf("expected len 5, got %d", s.Len())
	}
	if !s.Contains(Span{File: 3, Start: 5, End: 9}) {
		t.Fatalf("expected span to contain inner range")
	}
	if s.Contains(Span{File: 4, Start: 5, End: 6}) {
		t.Fatalf("spans from different files must not contain each other")
	}
	if NoSpan.IsValid() {
		t.Fatalf("NoSpan must be invalid")
	}
}

func TestFilesRegistry(t *testing.T) {
	files := NewFiles()
	a := files.Add("src/A.java")
	b := files.Add("src/B.java")
	again := files.Add("src/A.java")
	if a == NoFileID || b == NoFileID {
		t.Fatalf("expected valid file ids")
	}
	if a != again {
		t.Fatalf("expected registry to reuse id for same path, got %d and %d", a, again)
	}
	if path, ok := files.Path(b); !ok || path != "src/B.java" {
		t.Fatalf("unexpected path for %d: %q", b, path)
	}
	if files.Len() != 2 {
		t.Fatalf("expected 2 files, got %d", files.Len())
	}
	if files.Add("") != NoFileID {
		t.Fatalf("empty path must map to NoFileID")
	}
}
