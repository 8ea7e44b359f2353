package model

import "testing"

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input      string
		wantErr    bool
		wantSnap   bool
		wantStable bool
	}{
		{"snapshot", false, true, false},
		{"3.1.0", false, false, true},
		{"3.1.0-rc1", false, false, false},
		{"3.1", true, false, false},
		{"", true, false, false},
		{"not-a-version", true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.IsSnapshot() != tt.wantSnap {
				t.Fatalf("ParseVersion(%q).IsSnapshot() = %v, want %v", tt.input, got.IsSnapshot(), tt.wantSnap)
			}
			if got.IsStable() != tt.wantStable {
				t.Fatalf("ParseVersion(%q).IsStable() = %v, want %v", tt.input, got.IsStable(), tt.wantStable)
			}
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"3.1.0", "3.1.0", 0},
		{"3.1.0", "3.2.0", -1},
		{"3.2.0", "3.1.0", 1},
		{"3.1.0-rc1", "3.1.0", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			a, err := ParseVersion(tt.a)
			if err != nil {
				t.Fatalf("ParseVersion(%q): %v", tt.a, err)
			}
			b, err := ParseVersion(tt.b)
			if err != nil {
				t.Fatalf("ParseVersion(%q): %v", tt.b, err)
			}
			if got := a.Compare(b); got != tt.want {
				t.Fatalf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
