// ABOUTME: Tests for the fixed-length color-set encoding, reset, hex parsing and String
// ABOUTME: Byte-exact expectations because terminals parse these sequences literally

package gfx

import (
	"bytes"
	"testing"
)

func TestColor_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		color Color
		want  string
	}{
		{"padded", RGB(1, 2, 3), "\x1b[38;2;001;002;003m\x1b[48;2;001;002;003m"},
		{"black", Black, "\x1b[38;2;000;000;000m\x1b[48;2;000;000;000m"},
		{"white", White, "\x1b[38;2;255;255;255m\x1b[48;2;255;255;255m"},
		{"mixed", RGB(10, 200, 99), "\x1b[38;2;010;200;099m\x1b[48;2;010;200;099m"},
		{"grey", Grey(128), "\x1b[38;2;128;128;128m\x1b[48;2;128;128;128m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := tt.color.Apply(&buf); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
			if buf.Len() != ColorSetLen {
				t.Errorf("len = %d, want %d", buf.Len(), ColorSetLen)
			}
		})
	}
}

func TestResetColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := ResetColor(&buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\x1b[0m" {
		t.Errorf("ResetColor() = %q", got)
	}
}

func TestColor_Equality(t *testing.T) {
	t.Parallel()

	if RGB(255, 0, 255) != Pink {
		t.Error("RGB(255,0,255) != Pink")
	}
	if Grey(0) != Black {
		t.Error("Grey(0) != Black")
	}
	if Red == Green {
		t.Error("Red == Green")
	}
}

func TestParseHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#000000", want: Black},
		{in: "ff8800", want: RGB(255, 136, 0)},
		{in: "#0f0", want: Green},
		{in: " #FFFFFF ", want: White},
		{in: "#12345", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColor_String(t *testing.T) {
	t.Parallel()

	if got := RGB(10, 11, 255).String(); got != "#0a0bff" {
		t.Errorf("String() = %q", got)
	}
}

func TestColor_AppendTo(t *testing.T) {
	t.Parallel()

	prefix := []byte("x")
	got := RGB(1, 2, 3).AppendTo(prefix)
	if want := "x" + colorSeq(RGB(1, 2, 3)); string(got) != want {
		t.Errorf("AppendTo() = %q, want %q", got, want)
	}
	if len(got)-len(prefix) != ColorSetLen {
		t.Errorf("appended %d bytes, want %d", len(got)-len(prefix), ColorSetLen)
	}
}
