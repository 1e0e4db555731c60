package backtest

import (
	"testing"

	"backcast/internal/domain"
)

func TestSeriesPrefix(t *testing.T) {
	s := NewSeries(makeBars(4))

	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}

	for i := 0; i < s.Len(); i++ {
		view := s.Prefix(i)
		if view.Len() != i+1 {
			t.Errorf("Prefix(%d).Len() = %d, want %d", i, view.Len(), i+1)
		}
		if view.Step() != i {
			t.Errorf("Prefix(%d).Step() = %d, want %d", i, view.Step(), i)
		}
		if view.Last() != s.At(i) {
			t.Errorf("Prefix(%d).Last() = %+v, want bar at index %d", i, view.Last(), i)
		}
	}
}

func TestViewCloses(t *testing.T) {
	s := NewSeries(makeBars(3))
	view := s.Prefix(2)

	closes := view.Closes()
	want := []float64{100, 101, 102}
	if len(closes) != len(want) {
		t.Fatalf("Closes() has %d entries, want %d", len(closes), len(want))
	}
	for i := range want {
		if closes[i] != want[i] {
			t.Errorf("Closes()[%d] = %v, want %v", i, closes[i], want[i])
		}
	}

	// Closes returns a copy; mutating it must not touch the series.
	closes[0] = -1
	if s.At(0).Close != 100 {
		t.Error("mutating Closes() result changed the underlying series")
	}
}

func TestSignalBook(t *testing.T) {
	b := NewSignalBook()

	if _, ok := b.Get(0); ok {
		t.Error("Get on empty book returned ok")
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}

	b.Put(2, domain.Signal{Kind: domain.SignalBuy, Size: 5})
	sig, ok := b.Get(2)
	if !ok {
		t.Fatal("Get(2) returned false after Put")
	}
	if sig.Kind != domain.SignalBuy || sig.Size != 5 {
		t.Errorf("Get(2) = %+v, want buy size 5", sig)
	}

	// A second Put at the same step replaces the record.
	b.Put(2, domain.Signal{Kind: domain.SignalSell, Size: 3})
	sig, _ = b.Get(2)
	if sig.Kind != domain.SignalSell {
		t.Errorf("Get(2) after replace = %+v, want sell", sig)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}
