package osca

import "fmt"

// Generator is the name consumers are pointed at by the banner of every
// generated file.
const Generator = "configure"

// banner returns the first line of a generated file, commented with leader.
func banner(leader string) string {
	return fmt.Sprintf("%s generated - do not edit (see `%s`)\n", leader, Generator)
}

// groupedHex renders v as two groups of four hex digits joined by sep,
// e.g. 0xffff_fffc.
func groupedHex(v uint32, sep byte) string {
	return fmt.Sprintf("0x%04x%c%04x", v>>16, sep, v&0xffff)
}
