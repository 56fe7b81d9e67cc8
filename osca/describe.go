package osca

import (
	"github.com/q0jt/go-osca/osca/config/board"
	"github.com/q0jt/go-osca/osca/memmap"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Describe returns the memory map selected for b as a protobuf struct.
// Addresses are rendered the way the firmware constants spell them.
func Describe(b board.Board, m memmap.Map) (*structpb.Struct, error) {
	devices := make([]interface{}, 0, len(m.Devices))
	for _, d := range m.Devices {
		devices = append(devices, map[string]interface{}{
			"name":    d.Name,
			"symbol":  d.Symbol,
			"address": groupedHex(d.Addr, '_'),
		})
	}
	return structpb.NewStruct(map[string]interface{}{
		"board":              b.String(),
		"memory_end":         groupedHex(m.MemoryEnd, '_'),
		"stack_init":         groupedHex(m.StackInit, '_'),
		"io_addresses_start": groupedHex(m.IOStart(), '_'),
		"devices":            devices,
	})
}

// MarshalDescription renders Describe's result as indented protojson.
func MarshalDescription(b board.Board, m memmap.Map) ([]byte, error) {
	s, err := Describe(b, m)
	if err != nil {
		return nil, err
	}
	opts := protojson.MarshalOptions{Multiline: true, Indent: "  "}
	return opts.Marshal(s)
}
