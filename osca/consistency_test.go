package osca

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/q0jt/go-osca/osca/memmap"
)

var (
	rustConst = regexp.MustCompile(`(?m)^pub const (\w+): u32 = (0x[0-9a-f_]+);$`)
	cppConst  = regexp.MustCompile(`(?m)^std::uint32_t constexpr (\w+) = (0x[0-9a-f']+);$`)
	stackInit = regexp.MustCompile(`(?m)^\s+li sp, (0x[0-9a-f]+)$`)
)

func parseLiteral(t *testing.T, s string) uint32 {
	t.Helper()
	s = strings.NewReplacer("_", "", "'", "").Replace(s)
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		t.Fatalf("bad literal %q: %v", s, err)
	}
	return uint32(v)
}

func collect(t *testing.T, re *regexp.Regexp, content []byte) map[string]uint32 {
	t.Helper()
	out := make(map[string]uint32)
	for _, m := range re.FindAllStringSubmatch(string(content), -1) {
		out[m[1]] = parseLiteral(t, m[2])
	}
	return out
}

// Every address must read the same in every artifact.
func TestArtifactsAgree(t *testing.T) {
	m := memmap.Default()
	rust := collect(t, rustConst, RenderConstants(m).Content)
	cpp := collect(t, cppConst, RenderEmulator(m).Content)

	if len(rust) != len(m.Devices)+1 {
		t.Errorf("constants.rs has %d constants; want %d", len(rust), len(m.Devices)+1)
	}
	if len(cpp) != len(m.Devices)+2 {
		t.Errorf("main_config.hpp has %d constants; want %d", len(cpp), len(m.Devices)+2)
	}
	for _, d := range m.Devices {
		r, ok := rust[d.Symbol]
		if !ok {
			t.Errorf("constants.rs lacks %s", d.Symbol)
		}
		c, ok := cpp[d.Name]
		if !ok {
			t.Errorf("main_config.hpp lacks %s", d.Name)
		}
		if r != d.Addr || c != d.Addr {
			t.Errorf("%s: rust %#x, c++ %#x; want %#x", d.Name, r, c, d.Addr)
		}
	}
	if rust["MEMORY_END"] != m.MemoryEnd || cpp["memory_end"] != m.MemoryEnd {
		t.Errorf("memory end: rust %#x, c++ %#x; want %#x", rust["MEMORY_END"], cpp["memory_end"], m.MemoryEnd)
	}

	var lowest uint32 = 0xffff_ffff
	for name, v := range rust {
		if name != "MEMORY_END" && v < lowest {
			lowest = v
		}
	}
	if cpp["io_addresses_start"] != lowest {
		t.Errorf("io_addresses_start = %#x; want lowest device %#x", cpp["io_addresses_start"], lowest)
	}

	sp := stackInit.FindStringSubmatch(string(RenderStartup(m).Content))
	if sp == nil {
		t.Fatal("startup.s does not set sp")
	}
	if got := parseLiteral(t, sp[1]); got != m.StackInit {
		t.Errorf("startup.s sp = %#x; want %#x", got, m.StackInit)
	}
}

func TestLiteralSyntaxPerTarget(t *testing.T) {
	m := memmap.Default()
	if !strings.Contains(string(RenderConstants(m).Content), "LED: u32 = 0xffff_fffc;") {
		t.Errorf("constants.rs does not spell LED as 0xffff_fffc")
	}
	if !strings.Contains(string(RenderEmulator(m).Content), "led = 0xffff'fffc;") {
		t.Errorf("main_config.hpp does not spell led as 0xffff'fffc")
	}
}
