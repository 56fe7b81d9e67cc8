package osca

import (
	"fmt"
	"strings"

	"github.com/q0jt/go-osca/osca/memmap"
)

const (
	// EmulatorPath is where the emulator configuration header is written.
	EmulatorPath = "emulator/src/main_config.hpp"

	emulatorNamespace = "osqa"
)

// RenderEmulator returns the C++ header the host emulator includes. Besides
// the device addresses it exposes io_addresses_start, the lowest device
// address, which the emulator uses to route accesses away from RAM.
func RenderEmulator(m memmap.Map) Artifact {
	var b strings.Builder
	b.WriteString(banner("//"))
	b.WriteString("#pragma once\n")
	b.WriteString("#include <cstdint>\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "namespace %s {\n", emulatorNamespace)
	b.WriteString("\n")
	b.WriteString("// memory map\n")
	for _, d := range m.Devices {
		writeConstexpr(&b, d.Name, d.Addr)
	}
	writeConstexpr(&b, "io_addresses_start", m.IOStart())
	writeConstexpr(&b, "memory_end", m.MemoryEnd)
	b.WriteString("\n")
	fmt.Fprintf(&b, "} // namespace %s\n", emulatorNamespace)
	return Artifact{Path: EmulatorPath, Content: []byte(b.String())}
}

func writeConstexpr(b *strings.Builder, name string, v uint32) {
	fmt.Fprintf(b, "std::uint32_t constexpr %s = %s;\n", name, groupedHex(v, '\''))
}
