package fsutils

import "strconv"

const (
	kib = 1024
	mib = kib * 1024
	gib = mib * 1024
)

// SizeAndUnit returns a display size and its binary unit. A unit is only
// chosen once the size strictly exceeds it, so 1024 stays "1024" "B".
func SizeAndUnit(size int64) (string, string) {
	switch {
	case size > gib:
		return formatFraction(size, gib), "GiB"
	case size > mib:
		return formatFraction(size, mib), "MiB"
	case size > kib:
		return formatFraction(size, kib), "KiB"
	default:
		return strconv.FormatInt(size, 10), "B"
	}
}

// SizeText joins SizeAndUnit with a space, e.g. "1.00 KiB".
func SizeText(size int64) string {
	value, unit := SizeAndUnit(size)
	return value + " " + unit
}

func formatFraction(size, div int64) string {
	return strconv.FormatFloat(float64(size)/float64(div), 'f', 2, 64)
}
