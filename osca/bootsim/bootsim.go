// Package bootsim executes generated startup routines against a simulated
// byte-addressed memory. It understands only the handful of RV32I
// instructions the bootstrap stub is made of.
package bootsim

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/marcinbor85/gohex"
)

var (
	ErrNoEntry      = errors.New("no .global entry symbol")
	ErrStepLimit    = errors.New("step limit exceeded")
	ErrFellThrough  = errors.New("execution ran past the last instruction")
	ErrUndefinedSym = errors.New("undefined symbol")
)

const defaultMaxSteps = 1 << 22

type insn struct {
	line int
	op   string
	args []string
}

// Program is a parsed startup routine.
type Program struct {
	Entry  string
	labels map[string]int
	insns  []insn
}

// Config supplies what the linker would: symbol addresses and an initial
// memory image.
type Config struct {
	Symbols map[string]uint32
	// Memory is written in place. A fresh memory is used when nil.
	Memory   *gohex.Memory
	MaxSteps int
}

// Store is a single byte store.
type Store struct {
	Addr  uint32
	Value byte
}

// Result is the machine state when control left the routine.
type Result struct {
	// Exit is the symbol the routine jumped to.
	Exit   string
	Stores []Store
	Regs   map[string]uint32
	Steps  int

	mem *gohex.Memory
}

// Load parses src.
func Load(src string) (*Program, error) {
	p := &Program{labels: make(map[string]int)}
	s := bufio.NewScanner(strings.NewReader(src))
	n := 0
	for s.Scan() {
		n++
		line := s.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, ":") {
			label := strings.TrimSuffix(line, ":")
			if _, ok := p.labels[label]; ok {
				return nil, fmt.Errorf("line %d: duplicate label %s", n, label)
			}
			p.labels[label] = len(p.insns)
			continue
		}
		op, rest, _ := strings.Cut(line, " ")
		if op == ".global" || op == ".globl" {
			p.Entry = strings.TrimSpace(rest)
			continue
		}
		if strings.HasPrefix(op, ".") {
			return nil, fmt.Errorf("line %d: unsupported directive %s", n, op)
		}
		in := insn{line: n, op: op}
		if rest = strings.TrimSpace(rest); rest != "" {
			for _, a := range strings.Split(rest, ",") {
				in.args = append(in.args, strings.TrimSpace(a))
			}
		}
		if err := in.check(); err != nil {
			return nil, err
		}
		p.insns = append(p.insns, in)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if p.Entry == "" {
		return nil, ErrNoEntry
	}
	if _, ok := p.labels[p.Entry]; !ok {
		return nil, fmt.Errorf("entry %s: %w", p.Entry, ErrUndefinedSym)
	}
	return p, nil
}

var arity = map[string]int{
	"la":   2,
	"li":   2,
	"bge":  3,
	"sb":   2,
	"addi": 3,
	"j":    1,
}

func (in insn) check() error {
	want, ok := arity[in.op]
	if !ok {
		return fmt.Errorf("line %d: unsupported instruction %s", in.line, in.op)
	}
	if len(in.args) != want {
		return fmt.Errorf("line %d: %s takes %d operands, got %d", in.line, in.op, want, len(in.args))
	}
	return nil
}

// Run executes the program from its entry until it jumps to a symbol that is
// not one of its own labels.
func (p *Program) Run(cfg Config) (*Result, error) {
	mem := cfg.Memory
	if mem == nil {
		mem = gohex.NewMemory()
	}
	limit := cfg.MaxSteps
	if limit <= 0 {
		limit = defaultMaxSteps
	}
	m := &machine{regs: make(map[string]uint32), symbols: cfg.Symbols, mem: mem}
	pc := p.labels[p.Entry]
	for steps := 0; ; steps++ {
		if steps >= limit {
			return nil, ErrStepLimit
		}
		if pc >= len(p.insns) {
			return nil, ErrFellThrough
		}
		in := p.insns[pc]
		next, exit, err := m.exec(p, in, pc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", in.line, err)
		}
		if exit != "" {
			return &Result{Exit: exit, Stores: m.stores, Regs: m.regs, Steps: steps + 1, mem: mem}, nil
		}
		pc = next
	}
}

type machine struct {
	regs    map[string]uint32
	symbols map[string]uint32
	stores  []Store
	mem     *gohex.Memory
}

func (m *machine) exec(p *Program, in insn, pc int) (next int, exit string, err error) {
	a := in.args
	switch in.op {
	case "la":
		addr, ok := m.symbols[a[1]]
		if !ok {
			return 0, "", fmt.Errorf("%s: %w", a[1], ErrUndefinedSym)
		}
		err = m.set(a[0], addr)
	case "li":
		var v uint32
		if v, err = parseImm(a[1]); err == nil {
			err = m.set(a[0], v)
		}
	case "addi":
		var rs, v uint32
		if rs, err = m.get(a[1]); err != nil {
			break
		}
		if v, err = parseImm(a[2]); err == nil {
			err = m.set(a[0], rs+v)
		}
	case "sb":
		err = m.storeByte(a[0], a[1])
	case "bge":
		var rs1, rs2 uint32
		if rs1, err = m.get(a[0]); err != nil {
			break
		}
		if rs2, err = m.get(a[1]); err != nil {
			break
		}
		if int32(rs1) >= int32(rs2) {
			return p.jump(a[2])
		}
	case "j":
		return p.jump(a[0])
	}
	return pc + 1, "", err
}

func (p *Program) jump(target string) (int, string, error) {
	if i, ok := p.labels[target]; ok {
		return i, "", nil
	}
	return 0, target, nil
}

// storeByte executes sb src, off(base).
func (m *machine) storeByte(src, operand string) error {
	open := strings.IndexByte(operand, '(')
	if open < 0 || !strings.HasSuffix(operand, ")") {
		return fmt.Errorf("bad memory operand %q", operand)
	}
	var off uint32
	if s := strings.TrimSpace(operand[:open]); s != "" {
		v, err := parseImm(s)
		if err != nil {
			return err
		}
		off = v
	}
	base, err := m.get(operand[open+1 : len(operand)-1])
	if err != nil {
		return err
	}
	v, err := m.get(src)
	if err != nil {
		return err
	}
	addr := base + off
	b := byte(v)
	m.mem.SetBinary(addr, []byte{b})
	m.stores = append(m.stores, Store{Addr: addr, Value: b})
	return nil
}

func (m *machine) get(r string) (uint32, error) {
	if !isRegister(r) {
		return 0, fmt.Errorf("unknown register %q", r)
	}
	if r == "zero" || r == "x0" {
		return 0, nil
	}
	return m.regs[r], nil
}

func (m *machine) set(r string, v uint32) error {
	if !isRegister(r) {
		return fmt.Errorf("unknown register %q", r)
	}
	if r == "zero" || r == "x0" {
		return nil
	}
	m.regs[r] = v
	return nil
}

func isRegister(r string) bool {
	switch r {
	case "zero", "ra", "sp", "gp", "tp", "fp":
		return true
	}
	if len(r) < 2 {
		return false
	}
	n, err := strconv.Atoi(r[1:])
	if err != nil {
		return false
	}
	switch r[0] {
	case 'x':
		return n >= 0 && n < 32
	case 'a':
		return n >= 0 && n < 8
	case 't':
		return n >= 0 && n < 7
	case 's':
		return n >= 0 && n < 12
	}
	return false
}

func parseImm(s string) (uint32, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("bad immediate %q", s)
	}
	if v < -1<<31 || v > 1<<32-1 {
		return 0, fmt.Errorf("immediate %s out of range", s)
	}
	return uint32(v), nil
}
