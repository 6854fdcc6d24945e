package urlstate

import (
	"encoding/base64"
	"strconv"
	"testing"
)

func TestRelicRoundTrip(t *testing.T) {
	in := RelicLevels{3, 1, 11, 7, 2, 9, 4, 5, 6, 10, 8, 1}
	tok := EncodeRelicLevels(in)
	if len(tok) != 8 {
		t.Fatalf("packed token should be 8 chars (6 bytes unpadded), got %q", tok)
	}
	out, ok := DecodeRelicLevels(tok)
	if !ok {
		t.Fatalf("decode of %q failed", tok)
	}
	if out != in {
		t.Fatalf("round trip mismatch:\nwant: %v\n got: %v", in, out)
	}
}

func TestRelicRoundTripAllLevels(t *testing.T) {
	// Walk every level through every slot position.
	for lv := MinRelicLevel; lv <= MaxRelicLevel; lv++ {
		for slot := 0; slot < NumRelicSlots; slot++ {
			in := DefaultRelicLevels()
			in[slot] = lv
			// Avoid the uniform shorthand for this case.
			if other := (slot + 1) % NumRelicSlots; in[other] == lv {
				in[other] = MaxRelicLevel
			}
			tok := EncodeRelicLevels(in)
			out, ok := DecodeRelicLevels(tok)
			if !ok || out != in {
				t.Fatalf("lv=%d slot=%d token=%q: want %v got %v ok=%v", lv, slot, tok, in, out, ok)
			}
		}
	}
}

func TestRelicUniformShorthand(t *testing.T) {
	for lv := MinRelicLevel; lv <= MaxRelicLevel; lv++ {
		var in RelicLevels
		for i := range in {
			in[i] = lv
		}
		tok := EncodeRelicLevels(in)
		if want := strconv.FormatInt(int64(lv), 36); tok != want {
			t.Fatalf("lv=%d: want shorthand %q, got %q", lv, want, tok)
		}
		out, ok := DecodeRelicLevels(tok)
		if !ok || out != in {
			t.Fatalf("lv=%d: shorthand decode gave %v ok=%v", lv, out, ok)
		}
	}
}

func TestRelicDecodeInvalid(t *testing.T) {
	cases := []string{
		"",
		"!!",       // not base64url
		"0",        // single char below range
		"c",        // single char: base-36 12, above range
		"z",        // single char: base-36 35
		"AAAA",     // 3 bytes, not 6
		"AAAAAAAAAAAA", // 9 bytes, not 6
		base64.RawURLEncoding.EncodeToString(make([]byte, 5)),
		base64.RawURLEncoding.EncodeToString(make([]byte, 7)),
		"AAAAAAA=", // padded form is rejected
	}
	for _, tok := range cases {
		if got, ok := DecodeRelicLevels(tok); ok {
			t.Fatalf("token %q: expected no value, got %v", tok, got)
		}
	}
}

func TestRelicEncodeClamps(t *testing.T) {
	in := RelicLevels{0, -5, 99, 12, 1, 2, 3, 4, 5, 6, 7, 8}
	tok := EncodeRelicLevels(in)
	out, ok := DecodeRelicLevels(tok)
	if !ok {
		t.Fatalf("decode failed for %q", tok)
	}
	want := RelicLevels{1, 1, 11, 11, 1, 2, 3, 4, 5, 6, 7, 8}
	if out != want {
		t.Fatalf("clamped round trip:\nwant: %v\n got: %v", want, out)
	}
}

func TestRelicDecodeFieldAboveRange(t *testing.T) {
	// A raw field of 0xF maps to level 16 before clamping; decode must cap
	// it at 11.
	var packed uint64
	for i := 0; i < NumRelicSlots; i++ {
		packed = packed<<4 | 0xF
	}
	var buf [6]byte
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = byte(packed)
		packed >>= 8
	}
	tok := base64.RawURLEncoding.EncodeToString(buf[:])
	out, ok := DecodeRelicLevels(tok)
	if !ok {
		t.Fatalf("decode failed for %q", tok)
	}
	for i, lv := range out {
		if lv != MaxRelicLevel {
			t.Fatalf("slot %d: want %d, got %d", i, MaxRelicLevel, lv)
		}
	}
}

func TestClampRelicLevel(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{1, 1},
		{11, 11},
		{0, 1},
		{-3, 1},
		{12, 11},
		{7.9, 7},
		{1e18, 11},
	}
	for _, c := range cases {
		if got := ClampRelicLevel(c.in); got != c.want {
			t.Fatalf("ClampRelicLevel(%v): want %d, got %d", c.in, c.want, got)
		}
	}
	if got := ClampRelicLevel(nan()); got != 1 {
		t.Fatalf("ClampRelicLevel(NaN): want 1, got %d", got)
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}
