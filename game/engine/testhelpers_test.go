package engine

import (
	"reflect"
	"testing"
)

// recordingSink collects every diagnostic a board reports.
type recordingSink struct {
	got []Diagnostic
}

func (r *recordingSink) Record(d Diagnostic) { r.got = append(r.got, d) }

func (r *recordingSink) reasons() []Reason {
	out := make([]Reason, 0, len(r.got))
	for _, d := range r.got {
		out = append(out, d.Reason)
	}
	return out
}

func (r *recordingSink) has(reason Reason) bool {
	for _, d := range r.got {
		if d.Reason == reason {
			return true
		}
	}
	return false
}

func newTestBoard(t *testing.T, rows ...string) (*Board, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	b, err := NewBoard(&Layout{Name: "test", Rows: rows}, WithSink(sink))
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	return b, sink
}

func newReferenceBoard(t *testing.T) (*Board, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	return NewGame(WithSink(sink)), sink
}

func assertRows(t *testing.T, b *Board, want ...string) {
	t.Helper()
	if got := b.Rows(); !reflect.DeepEqual(got, want) {
		t.Errorf("Board mismatch\n got: %q\nwant: %q", got, want)
	}
}
