package utils

import "strings"

const cpfLength = 11

// NormalizeCPF keeps only the digits of input, truncated to 11
func NormalizeCPF(input string) string {
	return digitsOnly(input, cpfLength)
}

// FormatCPF renders input as XXX.XXX.XXX-XX. Partial input is formatted up to
// the digits present, so it can back a live typing mask.
func FormatCPF(input string) string {
	d := NormalizeCPF(input)
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return d[:3] + "." + d[3:]
	case len(d) <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}

// ValidateCPF checks length, rejects repeated-digit sequences and verifies both check digits
func ValidateCPF(input string) bool {
	d := NormalizeCPF(input)
	if len(d) != cpfLength {
		return false
	}

	if strings.Count(d, d[:1]) == cpfLength {
		return false
	}

	return cpfCheckDigit(d[:9], 10) == int(d[9]-'0') &&
		cpfCheckDigit(d[:10], 11) == int(d[10]-'0')
}

// cpfCheckDigit weights digit i by (weight - i) and reduces the sum modulo 11
func cpfCheckDigit(base string, weight int) int {
	sum := 0
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * (weight - i)
	}
	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

// digitsOnly strips every non-digit rune and truncates to max digits
func digitsOnly(input string, max int) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == max {
				break
			}
		}
	}
	return b.String()
}
