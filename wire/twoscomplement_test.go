package wire

import (
	"testing"

	"pgregory.net/rapid"
)

func TestSignedRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.SampledFrom([]int{1, 2, 4}).Draw(t, "width")
		bits := uint(width * 8)
		lo := -(int64(1) << (bits - 1))
		hi := (int64(1) << (bits - 1)) - 1
		v := rapid.Int64Range(lo, hi).Draw(t, "v")

		got := DecodeSigned(EncodeSigned(v, width), width)
		if got != v {
			t.Fatalf("round trip: encode/decode(%d, width=%d) = %d", v, width, got)
		}
	})
}

func TestSignedEncodingWorkedExample(t *testing.T) {
	// spec §8 scenario 4: encoding -1 at width 4 yields FF FF FF FF;
	// decoding 0xFFFFFFFF returns -1.
	if got := EncodeSigned(-1, 4); got != 0xFFFFFFFF {
		t.Fatalf("EncodeSigned(-1, 4) = %#x, want 0xffffffff", got)
	}
	if got := DecodeSigned(0xFFFFFFFF, 4); got != -1 {
		t.Fatalf("DecodeSigned(0xffffffff, 4) = %d, want -1", got)
	}
}
