package text

import "testing"

func TestDetectDirection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Direction
	}{
		{"empty", "", DirectionLTR},
		{"latin", "EX", DirectionLTR},
		{"digits only", "42", DirectionLTR},
		{"hebrew", "שלום", DirectionRTL},
		{"arabic", "مرحبا", DirectionRTL},
		{"leading digits then hebrew", "12 שלום", DirectionRTL},
		{"latin first", "A שלום", DirectionLTR},
		{"hebrew first", "שלום A", DirectionRTL},
		{"isolate skipped", "⁧שלום⁩ A", DirectionLTR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDirection(tt.text); got != tt.want {
				t.Errorf("DetectDirection(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
