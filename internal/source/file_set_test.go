package source

import (
	"testing"
)

func TestPositionResolvesLines(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.rhir", []byte("abc\ndef\n\nxyz"))
	f := fs.Get(id)
	if f == nil {
		t.Fatalf("file not found")
	}

	cases := []struct {
		offset uint32
		line   uint32
		col    uint32
	}{
		{0, 1, 1},
		{2, 1, 3},
		{4, 2, 1},
		{6, 2, 3},
		{8, 3, 1},
		{9, 4, 1},
		{11, 4, 3},
	}
	for _, c := range cases {
		pos := f.Position(c.offset)
		if pos.Line != c.line || pos.Col != c.col {
			t.Errorf("offset %d: expected %d:%d, got %d:%d", c.offset, c.line, c.col, pos.Line, pos.Col)
		}
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	c := a.Cover(b)
	if c.Start != 2 || c.End != 8 {
		t.Errorf("expected 2-8, got %d-%d", c.Start, c.End)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("cover across files should be a no-op, got %v", got)
	}
}

func TestLookupReturnsLatest(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("f.rhir", []byte("one"))
	id2 := fs.AddVirtual("f.rhir", []byte("two"))
	f, ok := fs.Lookup("f.rhir")
	if !ok {
		t.Fatalf("lookup failed")
	}
	if f.ID != id2 {
		t.Errorf("expected latest id %d, got %d", id2, f.ID)
	}
}
