package v2

import (
	"testing"

	"pgregory.net/rapid"
)

func TestStuffingBoundaryExamples(t *testing.T) {
	// spec §8 scenario 5.
	got := Stuff([]byte{0xFF, 0xFF, 0xFD, 0x03})
	want := []byte{0xFF, 0xFF, 0xFD, 0xFD, 0x03}
	if string(got) != string(want) {
		t.Fatalf("Stuff(FF FF FD 03) = % X, want % X", got, want)
	}

	noop := Stuff([]byte{0xFF, 0xFF, 0xFD, 0xFD, 0x03})
	if string(noop) != string([]byte{0xFF, 0xFF, 0xFD, 0xFD, 0x03}) {
		t.Fatalf("Stuff(FF FF FD FD 03) = % X, want no-op", noop)
	}
}

func TestStuffUnstuffRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.SliceOf(rapid.Byte()).Draw(t, "payload")
		got := Unstuff(Stuff(s))
		if string(got) != string(s) {
			t.Fatalf("unstuff(stuff(%v)) = %v", s, got)
		}
	})
}
