// Package mem provides the memory bus the CPU core reads and writes through.
// The bus is the CPU's only view of the outside world: it never reaches into
// PPU, APU, or cartridge-controller state directly.
package mem

// MemoryBus is the two-method contract the CPU core depends on. Read and
// Write must never panic or return an error for any address in 0x0000-0xFFFF
// -- out-of-range or unmapped addresses return/ignore a fixed value, the way
// real Game Boy hardware either opens the data bus or silently drops the
// write.
type MemoryBus interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
}

//  CART    CART-RAM  VRAM    WRAM    OAM+IO+HRAM
//   |         |        |       |         |
//   |0000     |A000    |8000   |C000     |FE00
//   |7FFF     |BFFF    |9FFF   |DFFF     |FFFF
//   ----------------------------------------- single 64 KiB bus

// Bus is a flat, region-partitioned implementation of MemoryBus. There is no
// bank switching, no PPU-owned VRAM access arbitration, and no I/O register
// side effects beyond what Reset applies -- all out of scope for the core;
// components that need those behaviors wrap Bus or implement MemoryBus
// themselves.
type Bus struct {
	mem [64 * 1024]byte // 64 KiB, zeroed on construction
}

// NewBus returns a Bus with every byte zeroed. Call Reset to additionally
// apply the documented post-boot-ROM I/O register state.
func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Read(addr uint16) byte {
	return b.mem[addr]
}

func (b *Bus) Write(addr uint16, value byte) {
	b.mem[addr] = value
}

// LoadROM copies data into the bus starting at 0x0000, truncating at the end
// of the address space. It does not perform any cartridge-header parsing or
// bank-controller setup.
func (b *Bus) LoadROM(data []byte) {
	n := copy(b.mem[:], data)
	_ = n
}

// LoadProgram writes raw bytes into the bus at addr, the same convenience
// the teacher's Cpu.LoadProgram offered for quickly seeding test fixtures.
func (b *Bus) LoadProgram(program []byte, addr uint16) {
	copy(b.mem[addr:], program)
}

// ioReset pairs each documented post-boot I/O register address with the
// value the boot ROM leaves it holding.
var ioReset = []struct {
	addr uint16
	val  byte
}{
	{0xFF00, 0xCF},
	{0xFF01, 0x00},
	{0xFF02, 0x7E},
	{0xFF04, 0xAB},
	{0xFF05, 0x00},
	{0xFF06, 0x00},
	{0xFF07, 0xF8},
	{0xFF0F, 0xE1},
	{0xFF10, 0x80},
	{0xFF11, 0xBF},
	{0xFF12, 0xF3},
	{0xFF14, 0xBF},
	{0xFF16, 0x3F},
	{0xFF17, 0x00},
	{0xFF19, 0xBF},
	{0xFF1A, 0x7F},
	{0xFF1B, 0xFF},
	{0xFF1C, 0x9F},
	{0xFF1E, 0xBF},
	{0xFF20, 0xFF},
	{0xFF21, 0x00},
	{0xFF22, 0x00},
	{0xFF23, 0xBF},
	{0xFF24, 0x77},
	{0xFF25, 0xF3},
	{0xFF26, 0xF1},
	{0xFF40, 0x91},
	{0xFF42, 0x00},
	{0xFF43, 0x00},
	{0xFF45, 0x00},
	{0xFF47, 0xFC},
	{0xFF48, 0xFF},
	{0xFF49, 0xFF},
	{0xFF4A, 0x00},
	{0xFF4B, 0x00},
	{0xFFFF, 0x00},
}

// Reset applies the exact I/O register write sequence documented for the
// post-boot-ROM state, in order. It does not touch cartridge ROM, VRAM, or
// work RAM -- those are left whatever LoadROM (or the zero value) put there.
func (b *Bus) Reset() {
	for _, kv := range ioReset {
		b.mem[kv.addr] = kv.val
	}
}
