package domain

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestWindow_ClipsToSequence(t *testing.T) {
	w := NewWindow(20)

	got := Slice(w, seq(15))
	if len(got) != 15 {
		t.Errorf("expected 15 displayed, got %d", len(got))
	}
	if w.Displayed() != 20 {
		t.Errorf("displayed count should stay 20, got %d", w.Displayed())
	}
}

func TestWindow_GrowStopsAtTotal(t *testing.T) {
	w := NewWindow(20)

	if !w.Grow(45) {
		t.Fatal("expected first grow to succeed")
	}
	if !w.Grow(45) {
		t.Fatal("expected second grow to succeed")
	}
	if w.Grow(45) {
		t.Error("window already covers the sequence, grow should be a no-op")
	}
	if w.Displayed() != 60 {
		t.Errorf("expected 60, got %d", w.Displayed())
	}
}

func TestWindow_ResetAndExplicitValues(t *testing.T) {
	w := NewWindow(10)
	w.Grow(100)
	w.Grow(100)

	w.SetDisplayed(-3)
	if w.Displayed() != 30 {
		t.Errorf("negative value should be ignored, got %d", w.Displayed())
	}

	w.SetDisplayed(5)
	if w.Displayed() != 5 {
		t.Errorf("smaller explicit value should be honored, got %d", w.Displayed())
	}

	w.Reset()
	if w.Displayed() != 10 {
		t.Errorf("reset should return to initial size, got %d", w.Displayed())
	}
}

func TestWindow_DefaultPageSize(t *testing.T) {
	if got := NewWindow(0).Initial(); got != DefaultPageSize {
		t.Errorf("expected default page size %d, got %d", DefaultPageSize, got)
	}
}

func TestWindow_PrefixLaw(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	w := NewWindow(4)
	n := 0

	for step := 0; step < 500; step++ {
		switch r.Intn(4) {
		case 0:
			w.Grow(n)
		case 1:
			n = r.Intn(50)
		case 2:
			w.SetDisplayed(r.Intn(60) - 5)
		case 3:
			w.Reset()
		}

		s := seq(n)
		got := Slice(w, s)
		want := s[:min(w.Displayed(), n)]
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("step %d: prefix mismatch (-want +got):\n%s", step, diff)
		}
	}
}
