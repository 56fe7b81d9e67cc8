package osca

import (
	"fmt"
	"strings"

	"github.com/q0jt/go-osca/osca/memmap"
)

// ConstantsPath is where the firmware runtime constants are written.
const ConstantsPath = "src/lib/constants.rs"

// RenderConstants returns the device addresses and memory bound as Rust
// constants for the firmware runtime.
func RenderConstants(m memmap.Map) Artifact {
	var b strings.Builder
	b.WriteString(banner("//"))
	for _, d := range m.Devices {
		fmt.Fprintf(&b, "pub const %s: u32 = %s;\n", d.Symbol, groupedHex(d.Addr, '_'))
	}
	fmt.Fprintf(&b, "pub const MEMORY_END: u32 = %s;\n", groupedHex(m.MemoryEnd, '_'))
	return Artifact{Path: ConstantsPath, Content: []byte(b.String())}
}
