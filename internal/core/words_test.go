package core_test

import (
	"testing"

	"freight-office/internal/core"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "Zero"},
		{1, "One"},
		{13, "Thirteen"},
		{40, "Forty"},
		{78, "Seventy Eight"},
		{100, "One Hundred"},
		{678, "Six Hundred Seventy Eight"},
		{1000, "One Thousand"},
		{45678, "Forty Five Thousand Six Hundred Seventy Eight"},
		{100000, "One Lakh"},
		{2345678, "Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
		{10000000, "One Crore"},
		// Indian grouping, not "Twelve Million ...".
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
		{999999999, "Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred Ninety Nine"},
		// Crore group recurses for amounts past 99 crore.
		{1000000000, "One Hundred Crore"},
		{12120000000, "One Thousand Two Hundred Twelve Crore"},
	}

	for _, tt := range tests {
		if got := core.AmountInWords(tt.in); got != tt.want {
			t.Errorf("AmountInWords(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAmountInWords_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := core.AmountInWords(12345678); got != "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight" {
			t.Fatalf("call %d diverged: %q", i, got)
		}
	}
}
