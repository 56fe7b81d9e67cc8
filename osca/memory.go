package osca

import (
	"context"
	"errors"
	"fmt"

	"github.com/q0jt/go-osca/osca/config"
	"github.com/q0jt/go-osca/osca/config/board"
	"github.com/q0jt/go-osca/osca/memmap"
)

var ErrBoardNotConfigured = errors.New("board is not configured")

// LoadMemoryMap evaluates the Pkl module at path and returns the validated
// memory map it declares for b.
func LoadMemoryMap(ctx context.Context, path string, b board.Board) (memmap.Map, error) {
	mem, err := config.LoadFromPath(ctx, path)
	if err != nil {
		return memmap.Map{}, err
	}
	return memMapWithBoard(mem, b)
}

func memMapWithBoard(mem *config.MemoryConfig, b board.Board) (memmap.Map, error) {
	for chip, layout := range mem.Boards {
		if chip != b || layout == nil {
			continue
		}
		m := fromLayout(layout)
		if err := m.Validate(); err != nil {
			return memmap.Map{}, fmt.Errorf("board %s: %w", b, err)
		}
		return m, nil
	}
	return memmap.Map{}, fmt.Errorf("board %s: %w", b, ErrBoardNotConfigured)
}

func fromLayout(layout *config.MemoryMap) memmap.Map {
	m := memmap.Map{
		MemoryEnd: layout.MemoryEnd,
		StackInit: layout.StackInit,
	}
	for _, d := range layout.Devices {
		if d == nil {
			continue
		}
		m.Devices = append(m.Devices, memmap.Device{Name: d.Name, Symbol: d.Symbol, Addr: d.Addr})
	}
	return m
}
