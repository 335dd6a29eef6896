package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gbz80/mem"
)

func TestCBBitSetsZWhenClear(t *testing.T) {
	c := NewCPU(mem.NewBus())
	c.Reg.Set8(RegB, 0x00)

	extendedTable[0x40].Execute(c) // BIT 0,B
	assert.True(t, c.Reg.FlagZ())
	assert.True(t, c.Reg.FlagH())
	assert.False(t, c.Reg.FlagN())
}

func TestCBBitClearsZWhenSet(t *testing.T) {
	c := NewCPU(mem.NewBus())
	c.Reg.Set8(RegB, 0x01)

	extendedTable[0x40].Execute(c) // BIT 0,B
	assert.False(t, c.Reg.FlagZ())
}

func TestCBBitOnIndirectHLCosts3MCycles(t *testing.T) {
	assert.Equal(t, byte(3), extendedTable[0x46].Cycles) // BIT 0,(HL)
	assert.Equal(t, byte(4), extendedTable[0x86].Cycles) // RES 0,(HL)
	assert.Equal(t, byte(4), extendedTable[0xC6].Cycles) // SET 0,(HL)
	assert.Equal(t, byte(2), extendedTable[0x40].Cycles) // BIT 0,B
}

func TestCBResAndSet(t *testing.T) {
	c := NewCPU(mem.NewBus())
	c.Reg.Set8(RegA, 0xFF)

	extendedTable[0xBF].Execute(c) // RES 7,A
	assert.Equal(t, byte(0x7F), c.Reg.Get8(RegA))

	extendedTable[0xFF].Execute(c) // SET 7,A
	assert.Equal(t, byte(0xFF), c.Reg.Get8(RegA))
}

func TestCBRotateLeftThroughCarry(t *testing.T) {
	c := NewCPU(mem.NewBus())
	c.Reg.Set8(RegA, 0x80)
	c.Reg.SetFlags(false, false, false, false)

	extendedTable[0x17].Execute(c) // RL A
	assert.Equal(t, byte(0x00), c.Reg.Get8(RegA))
	assert.True(t, c.Reg.FlagC())
	assert.True(t, c.Reg.FlagZ())

	extendedTable[0x17].Execute(c) // RL A again, carry rotates in
	assert.Equal(t, byte(0x01), c.Reg.Get8(RegA))
	assert.False(t, c.Reg.FlagC())
}

func TestCBSwap(t *testing.T) {
	c := NewCPU(mem.NewBus())
	c.Reg.Set8(RegB, 0xA5)
	extendedTable[0x30].Execute(c) // SWAP B
	assert.Equal(t, byte(0x5A), c.Reg.Get8(RegB))
	assert.False(t, c.Reg.FlagC())
}
