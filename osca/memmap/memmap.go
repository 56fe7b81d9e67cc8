// Package memmap holds the platform memory map shared by the firmware,
// its runtime and the host emulator.
package memmap

import (
	"errors"
	"fmt"
)

// Device is a memory-mapped I/O register.
type Device struct {
	// Name is the snake_case identifier used by the emulator.
	Name string
	// Symbol is the constant name used by the firmware runtime.
	Symbol string
	Addr   uint32
}

// Map is the platform memory map. Usable memory is [0, MemoryEnd); devices sit
// at the top of the address space.
type Map struct {
	Devices   []Device
	MemoryEnd uint32
	StackInit uint32
}

const (
	memoryEnd = 0x0080_0000
	// the stack grows down from the top of usable memory
	stackInit = memoryEnd
)

// Default returns the memory map shared by every supported board.
func Default() Map {
	return Map{
		Devices: []Device{
			{Name: "led", Symbol: "LED", Addr: 0xffff_fffc},
			{Name: "uart_out", Symbol: "UART_OUT_ADDR", Addr: 0xffff_fff8},
			{Name: "uart_in", Symbol: "UART_IN_ADDR", Addr: 0xffff_fff4},
			{Name: "sdcard_busy", Symbol: "SDCARD_BUSY", Addr: 0xffff_fff0},
			{Name: "sdcard_read_sector", Symbol: "SDCARD_READ_SECTOR", Addr: 0xffff_ffec},
			{Name: "sdcard_next_byte", Symbol: "SDCARD_NEXT_BYTE", Addr: 0xffff_ffe8},
			{Name: "sdcard_status", Symbol: "SDCARD_STATUS", Addr: 0xffff_ffe4},
			{Name: "sdcard_write_sector", Symbol: "SDCARD_WRITE_SECTOR", Addr: 0xffff_ffe0},
		},
		MemoryEnd: memoryEnd,
		StackInit: stackInit,
	}
}

// IOStart returns the lowest device address. Addresses at or above it belong
// to the I/O region. A map without devices has an empty I/O region and
// IOStart returns 0.
func (m Map) IOStart() uint32 {
	if len(m.Devices) == 0 {
		return 0
	}
	start := m.Devices[0].Addr
	for _, d := range m.Devices[1:] {
		if d.Addr < start {
			start = d.Addr
		}
	}
	return start
}

// Lookup returns the device called name.
func (m Map) Lookup(name string) (Device, bool) {
	for _, d := range m.Devices {
		if d.Name == name {
			return d, true
		}
	}
	return Device{}, false
}

var (
	ErrNoDevices      = errors.New("memory map has no devices")
	ErrStackBeyondEnd = errors.New("stack starts beyond end of memory")
	ErrIOOverlap      = errors.New("I/O region overlaps usable memory")
)

// Validate reports the first inconsistency found in m.
func (m Map) Validate() error {
	if len(m.Devices) == 0 {
		return ErrNoDevices
	}
	names := make(map[string]bool)
	symbols := make(map[string]bool)
	addrs := make(map[uint32]string)
	for i, d := range m.Devices {
		if d.Name == "" || d.Symbol == "" {
			return fmt.Errorf("device %d: missing name or symbol", i)
		}
		if names[d.Name] {
			return fmt.Errorf("device %s: duplicate name", d.Name)
		}
		if symbols[d.Symbol] {
			return fmt.Errorf("device %s: duplicate symbol %s", d.Name, d.Symbol)
		}
		if other, ok := addrs[d.Addr]; ok {
			return fmt.Errorf("device %s: address %#x already used by %s", d.Name, d.Addr, other)
		}
		if d.Addr%4 != 0 {
			return fmt.Errorf("device %s: address %#x is not word aligned", d.Name, d.Addr)
		}
		names[d.Name] = true
		symbols[d.Symbol] = true
		addrs[d.Addr] = d.Name
	}
	if m.StackInit > m.MemoryEnd {
		return ErrStackBeyondEnd
	}
	if m.IOStart() < m.MemoryEnd {
		return ErrIOOverlap
	}
	return nil
}
