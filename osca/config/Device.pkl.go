// Bindings for the Pkl module `MemoryConfig` (pkl/MemoryConfig.pkl), kept in sync by hand.
package config

type Device struct {
	// Emulator identifier
	Name string `pkl:"name"`

	// Firmware constant name
	Symbol string `pkl:"symbol"`

	Addr uint32 `pkl:"addr"`
}
