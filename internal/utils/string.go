package utils

// CapitalMask records which byte positions of s hold an upper-case ASCII
// letter. It returns nil when s has no capitals.
func CapitalMask(s string) []bool {
	var mask []bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			if mask == nil {
				mask = make([]bool, len(s))
			}
			mask[i] = true
		}
	}
	return mask
}

// ApplyCapitals upper-cases the letters of word at the positions set in
// mask. Positions past the end of word are ignored.
func ApplyCapitals(word string, mask []bool) string {
	if len(mask) == 0 {
		return word
	}

	buf := []byte(word)
	for i := 0; i < len(buf) && i < len(mask); i++ {
		if mask[i] && buf[i] >= 'a' && buf[i] <= 'z' {
			buf[i] = buf[i] - 'a' + 'A'
		}
	}
	return string(buf)
}
