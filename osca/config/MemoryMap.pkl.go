// Bindings for the Pkl module `MemoryConfig` (pkl/MemoryConfig.pkl), kept in sync by hand.
package config

type MemoryMap struct {
	// Memory-mapped I/O registers
	Devices []*Device `pkl:"devices"`

	// End of usable memory (exclusive)
	MemoryEnd uint32 `pkl:"memoryEnd"`

	// Initial stack pointer
	StackInit uint32 `pkl:"stackInit"`
}
