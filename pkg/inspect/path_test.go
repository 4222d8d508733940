package inspect

import (
	"errors"
	"slices"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Path
	}{
		{
			name:  "device only",
			input: "IED1",
			want:  Path{Device: "IED1"},
		},
		{
			name:  "access point",
			input: "IED1/AP1",
			want:  Path{Device: "IED1", AccessPoint: "AP1"},
		},
		{
			name:  "logical device",
			input: "IED1/AP1/LD1",
			want:  Path{Device: "IED1", AccessPoint: "AP1", LDevice: "LD1"},
		},
		{
			name:  "logical node",
			input: "IED1/AP1/LD1/XCBR1",
			want:  Path{Device: "IED1", AccessPoint: "AP1", LDevice: "LD1", LN: "XCBR1"},
		},
		{
			name:  "data member",
			input: " IED1/AP1/LD1/XCBR1.Pos.origin.orCat ",
			want: Path{
				Device: "IED1", AccessPoint: "AP1", LDevice: "LD1", LN: "XCBR1",
				Data: []string{"Pos", "origin", "orCat"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.input)
			if err != nil {
				t.Fatalf("ParsePath(%q) error: %v", tt.input, err)
			}
			if got.Device != tt.want.Device || got.AccessPoint != tt.want.AccessPoint ||
				got.LDevice != tt.want.LDevice || got.LN != tt.want.LN {
				t.Errorf("ParsePath(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if !slices.Equal(got.Data, tt.want.Data) {
				t.Errorf("Data: got %v, want %v", got.Data, tt.want.Data)
			}
			if got.IsData() != (len(tt.want.Data) > 0) {
				t.Errorf("IsData: got %v", got.IsData())
			}
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrEmptyPath},
		{"   ", ErrEmptyPath},
		{"/IED1", ErrInvalidPath},
		{"IED1/", ErrInvalidPath},
		{"IED1//LD1", ErrInvalidPath},
		{"IED1/AP1/LD1/XCBR1/extra", ErrInvalidPath},
		{"IED1/AP1.x/LD1", ErrInvalidPath},
		{"IED1/AP1/LD1/.Pos", ErrInvalidPath},
		{"IED1/AP1/LD1/XCBR1.Pos..stVal", ErrInvalidPath},
		{"IED1/AP1/LD1/XCBR1.", ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParsePath(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParsePath(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestPathString(t *testing.T) {
	for _, in := range []string{"IED1", "IED1/AP1", "IED1/AP1/LD1/LLN0", "IED1/AP1/LD1/XCBR1.Pos.stVal"} {
		p, err := ParsePath(in)
		if err != nil {
			t.Fatalf("ParsePath(%q) error: %v", in, err)
		}
		if got := p.String(); got != in {
			t.Errorf("String() = %q, want %q", got, in)
		}
	}
}
