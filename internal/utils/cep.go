package utils

const cepLength = 8

// NormalizeCEP keeps only the digits of a postal code, truncated to 8
func NormalizeCEP(input string) string {
	return digitsOnly(input, cepLength)
}

// FormatCEP renders a postal code as 00000-000, partially while typing
func FormatCEP(input string) string {
	d := NormalizeCEP(input)
	if len(d) > 5 {
		return d[:5] + "-" + d[5:]
	}
	return d
}
