package diag

import (
	"testing"

	"reactc/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(PruneUnsupportedValue, source.Span{}, "one")) {
		t.Errorf("first add should succeed")
	}
	if !b.Add(NewError(PruneUnsupportedValue, source.Span{}, "two")) {
		t.Errorf("second add should succeed")
	}
	if b.Add(NewError(PruneUnsupportedValue, source.Span{}, "three")) {
		t.Errorf("third add should be dropped")
	}
	if b.Len() != 2 {
		t.Errorf("expected 2 items, got %d", b.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	spanA := source.Span{File: 0, Start: 10, End: 12}
	spanB := source.Span{File: 0, Start: 2, End: 4}
	b.Add(NewError(SynUnexpectedToken, spanA, "late"))
	b.Add(NewError(SynUnexpectedToken, spanB, "early"))
	b.Add(NewError(SynUnexpectedToken, spanB, "early dup"))

	b.Sort()
	b.Dedup()

	if b.Len() != 2 {
		t.Fatalf("expected 2 after dedup, got %d", b.Len())
	}
	if b.Items()[0].Message != "early" {
		t.Errorf("expected sorted order, got %q first", b.Items()[0].Message)
	}
}

func TestCodePhase(t *testing.T) {
	if got := PruneMissingScopeNode.Phase(); got != "prune" {
		t.Errorf("expected prune, got %q", got)
	}
	if got := SynExpectPlace.Phase(); got != "parse" {
		t.Errorf("expected parse, got %q", got)
	}
}
