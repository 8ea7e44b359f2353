package model

import "testing"

func TestParseBuildID(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"20220401", "20220401", false},
		{"20220401.1", "20220401.1", false},
		{"20220401.0", "20220401", false},
		{"", "", true},
		{"2022040", "", true},
		{"2022-04-01", "", true},
		{"20220401.1.2", "", true},
		{"20220401.-1", "", true},
		{"20220401.abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBuildID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBuildID(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.String() != tt.want {
				t.Fatalf("ParseBuildID(%q).String() = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestBuildIDCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"20220401", "20220401", 0},
		{"20220401", "20220402", -1},
		{"20220402", "20220401", 1},
		{"20220401.1", "20220401.2", -1},
		{"20220401.2", "20220401.1", 1},
		{"20220401.1", "20220401.1", 0},
		{"20220401", "20220401.1", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			a, err := ParseBuildID(tt.a)
			if err != nil {
				t.Fatalf("ParseBuildID(%q): %v", tt.a, err)
			}
			b, err := ParseBuildID(tt.b)
			if err != nil {
				t.Fatalf("ParseBuildID(%q): %v", tt.b, err)
			}
			if got := a.Compare(b); got != tt.want {
				t.Fatalf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
