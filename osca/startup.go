package osca

import (
	"fmt"
	"strings"

	"github.com/q0jt/go-osca/osca/memmap"
)

const (
	// StartupPath is where the bootstrap stub is written.
	StartupPath = "src/startup.s"

	EntrySymbol    = "_start"
	RunSymbol      = "run"
	BSSStartSymbol = "__bss_start__"
	BSSEndSymbol   = "__bss_end__"
)

// RenderStartup returns the processor startup routine. It zeroes the BSS
// region a byte at a time, loads the stack pointer and jumps to the runtime
// entry, never returning.
func RenderStartup(m memmap.Map) Artifact {
	var b strings.Builder
	b.WriteString(banner("#"))
	fmt.Fprintf(&b, ".global %s\n", EntrySymbol)
	fmt.Fprintf(&b, "%s:\n", EntrySymbol)
	b.WriteString("    # initialize BSS section to zeros\n")
	fmt.Fprintf(&b, "    la a0, %s\n", BSSStartSymbol)
	fmt.Fprintf(&b, "    la a1, %s\n", BSSEndSymbol)
	b.WriteString("    li a2, 0\n")
	b.WriteString(".bss_clear_loop:\n")
	// bge so an empty region stores nothing
	b.WriteString("    bge a0, a1, .bss_clear_done\n")
	b.WriteString("    sb a2, (a0)\n")
	b.WriteString("    addi a0, a0, 1\n")
	b.WriteString("    j .bss_clear_loop\n")
	b.WriteString(".bss_clear_done:\n")
	b.WriteString("    # set stack pointer and enter program\n")
	fmt.Fprintf(&b, "    li sp, %#x\n", m.StackInit)
	fmt.Fprintf(&b, "    j %s\n", RunSymbol)
	return Artifact{Path: StartupPath, Content: []byte(b.String())}
}
