package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadWriteRoundTrip(t *testing.T) {
	b := NewBus()
	b.Write(0xC010, 0x42)
	assert.Equal(t, byte(0x42), b.Read(0xC010))
	assert.Equal(t, byte(0x00), b.Read(0xC011))
}

func TestLoadROM(t *testing.T) {
	b := NewBus()
	b.LoadROM([]byte{0x00, 0x01, 0x02})
	assert.Equal(t, byte(0x00), b.Read(0x0000))
	assert.Equal(t, byte(0x01), b.Read(0x0001))
	assert.Equal(t, byte(0x02), b.Read(0x0002))
}

func TestLoadProgramAtOffset(t *testing.T) {
	b := NewBus()
	b.LoadProgram([]byte{0xAA, 0xBB}, 0x0100)
	assert.Equal(t, byte(0xAA), b.Read(0x0100))
	assert.Equal(t, byte(0xBB), b.Read(0x0101))
}

// Reset must apply the documented post-boot-ROM I/O register values exactly.
func TestResetAppliesIORegisterValues(t *testing.T) {
	b := NewBus()
	b.Reset()

	cases := []struct {
		addr uint16
		want byte
	}{
		{0xFF00, 0xCF},
		{0xFF05, 0x00},
		{0xFF07, 0xF8},
		{0xFF11, 0xBF},
		{0xFF24, 0x77},
		{0xFF26, 0xF1},
		{0xFF40, 0x91},
		{0xFF47, 0xFC},
		{0xFFFF, 0x00},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, b.Read(tc.addr), "addr %#04x", tc.addr)
	}
}

func TestResetDoesNotTouchWorkRAM(t *testing.T) {
	b := NewBus()
	b.Write(0xC000, 0x99)
	b.Reset()
	assert.Equal(t, byte(0x99), b.Read(0xC000))
}
