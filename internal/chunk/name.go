package chunk

import "strconv"

// maxIndexDigits bounds accepted names so ParseIndex never overflows int.
const maxIndexDigits = 18

// Name returns the file name the splitter gives chunk i.
func Name(i int) string {
	return strconv.Itoa(i)
}

// ParseIndex reports the chunk index encoded in name. Only the canonical
// base-10 form is accepted, so every index has exactly one file name:
// "7" parses, "07", "+7", "7.bin" and "" do not.
func ParseIndex(name string) (int, bool) {
	if name == "" || len(name) > maxIndexDigits {
		return 0, false
	}
	if len(name) > 1 && name[0] == '0' {
		return 0, false
	}
	n := 0
	for i := range len(name) {
		c := name[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
