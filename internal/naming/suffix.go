package naming

// NextSuffix returns the letter suffix that follows suffix in bijective
// base-26 order: "" → "A", "A" → "B", "Z" → "AA", "AZ" → "BA", "ZZ" → "AAA".
// suffix must consist of uppercase ASCII letters.
func NextSuffix(suffix string) string {
	b := []byte(suffix)
	i := len(b) - 1
	for i >= 0 && b[i] == 'Z' {
		b[i] = 'A'
		i--
	}
	if i < 0 {
		// Every position carried (or suffix was empty): grow by one letter.
		return "A" + string(b)
	}
	b[i]++
	return string(b)
}
