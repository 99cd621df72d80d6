// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package drive

import "testing"

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare DOI",
			text: "DOI: 10.1016/j.cell.2023.01.001",
			want: "10.1016/j.cell.2023.01.001",
		},
		{
			name: "DOI in URL",
			text: "available at https://doi.org/10.1038/s41586-021-03819-2 online",
			want: "10.1038/s41586-021-03819-2",
		},
		{
			name: "first of several",
			text: "10.1000/first and later 10.1000/second",
			want: "10.1000/first",
		},
		{
			name: "short registrant rejected",
			text: "version 10.2/3 of the protocol",
			want: "",
		},
		{
			name: "no DOI",
			text: "plain prose with no identifiers",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findDOI(tt.text); got != tt.want {
				t.Errorf("findDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractDOIInvalidPDF(t *testing.T) {
	if _, err := ExtractDOI([]byte("not a pdf at all")); err == nil {
		t.Fatal("ExtractDOI on non-PDF bytes should fail")
	}
}

func TestExtractDOIEmpty(t *testing.T) {
	if _, err := ExtractDOI(nil); err == nil {
		t.Fatal("ExtractDOI on empty input should fail")
	}
}
