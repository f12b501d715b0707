package core

import "strings"

var onesWords = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords renders a whole rupee amount in the Indian numbering system:
// hundreds, then thousands, lakhs and crores in two-digit groups. The caller
// rounds fractional rupees and appends the currency unit. Zero renders as
// "Zero"; the crore group recurses, so amounts beyond 99 crore render too.
func AmountInWords(n int64) string {
	if n == 0 {
		return "Zero"
	}
	if n < 0 {
		return "Minus " + AmountInWords(-n)
	}
	return strings.Join(wordGroups(n), " ")
}

func wordGroups(n int64) []string {
	var parts []string
	if crore := n / 1_00_00_000; crore > 0 {
		parts = append(parts, wordGroups(crore)...)
		parts = append(parts, "Crore")
		n %= 1_00_00_000
	}
	if lakh := n / 1_00_000; lakh > 0 {
		parts = append(parts, twoDigitWords(lakh)...)
		parts = append(parts, "Lakh")
		n %= 1_00_000
	}
	if thousand := n / 1000; thousand > 0 {
		parts = append(parts, twoDigitWords(thousand)...)
		parts = append(parts, "Thousand")
		n %= 1000
	}
	if hundred := n / 100; hundred > 0 {
		parts = append(parts, onesWords[hundred], "Hundred")
		n %= 100
	}
	parts = append(parts, twoDigitWords(n)...)
	return parts
}

// twoDigitWords renders 0..99; zero yields no words.
func twoDigitWords(n int64) []string {
	switch {
	case n == 0:
		return nil
	case n < 20:
		return []string{onesWords[n]}
	case n%10 == 0:
		return []string{tensWords[n/10]}
	default:
		return []string{tensWords[n/10], onesWords[n%10]}
	}
}
