package bootsim

import (
	"io"

	"github.com/marcinbor85/gohex"
)

// ParseImage reads an Intel HEX memory image, for use as Config.Memory.
func ParseImage(r io.Reader) (*gohex.Memory, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, err
	}
	return mem, nil
}

// Memory returns the simulated memory after the run.
func (r *Result) Memory() *gohex.Memory {
	return r.mem
}

// Bytes returns size bytes of memory starting at addr. Bytes never written
// read as fill.
func (r *Result) Bytes(addr, size uint32, fill byte) []byte {
	return r.mem.ToBinary(addr, size, fill)
}

// DumpIntelHex writes the simulated memory as Intel HEX.
func (r *Result) DumpIntelHex(w io.Writer) error {
	return r.mem.DumpIntelHex(w, 16)
}
