package bootsim

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/marcinbor85/gohex"
)

const copyLoop = `
.global entry
entry:
    la t0, dst        # destination
    li t1, 0x41
    li t2, 3
loop:
    bge zero, t2, done
    sb t1, 1(t0)
    addi t0, t0, 1
    addi t2, t2, -1
    j loop
done:
    j main
`

func TestRun(t *testing.T) {
	p, err := Load(copyLoop)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if p.Entry != "entry" {
		t.Errorf("Entry = %q; want \"entry\"", p.Entry)
	}
	res, err := p.Run(Config{Symbols: map[string]uint32{"dst": 0x100}})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if res.Exit != "main" {
		t.Errorf("Exit = %q; want \"main\"", res.Exit)
	}
	want := []Store{{0x101, 0x41}, {0x102, 0x41}, {0x103, 0x41}}
	if len(res.Stores) != len(want) {
		t.Fatalf("Stores = %v; want %v", res.Stores, want)
	}
	for i := range want {
		if res.Stores[i] != want[i] {
			t.Errorf("Stores[%d] = %+v; want %+v", i, res.Stores[i], want[i])
		}
	}
	if got := res.Regs["t2"]; got != 0 {
		t.Errorf("t2 = %d; want 0", got)
	}
	if got := res.Bytes(0x100, 5, 0xff); !bytes.Equal(got, []byte{0xff, 0x41, 0x41, 0x41, 0xff}) {
		t.Errorf("Bytes() = % x", got)
	}
}

func TestRunPreloadedMemory(t *testing.T) {
	var image bytes.Buffer
	src := gohex.NewMemory()
	if err := src.AddBinary(0x100, []byte{1, 2, 3, 4, 5}); err != nil {
		t.Fatal(err)
	}
	if err := src.DumpIntelHex(&image, 16); err != nil {
		t.Fatal(err)
	}
	mem, err := ParseImage(&image)
	if err != nil {
		t.Fatalf("ParseImage() = %v", err)
	}

	p, err := Load(copyLoop)
	if err != nil {
		t.Fatal(err)
	}
	res, err := p.Run(Config{Symbols: map[string]uint32{"dst": 0x100}, Memory: mem})
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Bytes(0x100, 5, 0); !bytes.Equal(got, []byte{1, 0x41, 0x41, 0x41, 5}) {
		t.Errorf("Bytes() = % x", got)
	}

	var out bytes.Buffer
	if err := res.DumpIntelHex(&out); err != nil {
		t.Fatalf("DumpIntelHex() = %v", err)
	}
	if !strings.HasSuffix(strings.ToUpper(strings.TrimSpace(out.String())), ":00000001FF") {
		t.Errorf("DumpIntelHex() missing end of file record:\n%s", out.String())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no entry", "start:\n j run\n"},
		{"entry not defined", ".global start\n j run\n"},
		{"unsupported instruction", ".global s\ns:\n lw a0, 0(a1)\n"},
		{"wrong operand count", ".global s\ns:\n li a0\n"},
		{"duplicate label", ".global s\ns:\ns:\n j run\n"},
		{"unsupported directive", ".global s\n.section .text\ns:\n j run\n"},
	}
	for _, tc := range tests {
		if _, err := Load(tc.src); err == nil {
			t.Errorf("%s: Load() = nil; want error", tc.name)
		}
	}
	if _, err := Load("start:\n j run\n"); !errors.Is(err, ErrNoEntry) {
		t.Errorf("Load() = %v; want %v", err, ErrNoEntry)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"undefined symbol", ".global s\ns:\n la a0, nowhere\n j run\n", ErrUndefinedSym},
		{"falls through", ".global s\ns:\n li a0, 1\n", ErrFellThrough},
		{"infinite loop", ".global s\ns:\n j s\n", ErrStepLimit},
	}
	for _, tc := range tests {
		p, err := Load(tc.src)
		if err != nil {
			t.Fatalf("%s: Load() = %v", tc.name, err)
		}
		if _, err := p.Run(Config{MaxSteps: 100}); !errors.Is(err, tc.want) {
			t.Errorf("%s: Run() = %v; want %v", tc.name, err, tc.want)
		}
	}

	p, err := Load(".global s\ns:\n li q9, 1\n j run\n")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run(Config{}); err == nil {
		t.Errorf("Run() with unknown register = nil; want error")
	}
}

func TestZeroRegister(t *testing.T) {
	p, err := Load(".global s\ns:\n li zero, 5\n addi a0, zero, 7\n j run\n")
	if err != nil {
		t.Fatal(err)
	}
	res, err := p.Run(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Regs["a0"] != 7 {
		t.Errorf("a0 = %d; want 7", res.Regs["a0"])
	}
	if res.Steps != 3 {
		t.Errorf("Steps = %d; want 3", res.Steps)
	}
}
