// Package cpu implements the Sharp LR35902 (DMG) instruction interpreter:
// register file, flags, the base and CB-prefixed opcode tables, and the
// fetch/decode/execute stepper. It has no notion of PPU, APU, timers, or
// cartridge banking -- it only ever touches memory through a mem.MemoryBus.
package cpu

import (
	"fmt"
	"log"

	"gbz80/mem"
)

// Instruction is a fully-bound, ready-to-execute opcode table entry. Name is
// used only for disassembly/debugging; Execute performs the operation and
// returns the number of additional cycles beyond the opcode's base Cycles
// (non-zero only for a taken conditional JR/JP/CALL/RET, whose base Cycles
// is the not-taken cost; every other instruction returns 0).
type Instruction struct {
	Name    string
	Cycles  byte
	Execute func(c *CPU) byte
}

// CPU holds the DMG register file and the bus it executes against.
type CPU struct {
	Reg Registers
	Bus mem.MemoryBus

	IRQEnabled bool
	eiPending  bool
	Halted     bool

	Cycles uint64
}

// NewCPU returns a CPU wired to bus, with registers reset to the documented
// post-boot-ROM state.
func NewCPU(bus mem.MemoryBus) *CPU {
	c := &CPU{Bus: bus}
	c.Reset()
	return c
}

// Reset restores the register file to the documented post-boot-ROM values.
// It does not touch the bus; callers that also want the I/O register reset
// sequence applied should call Reset on a *mem.Bus directly.
func (c *CPU) Reset() {
	c.Reg.Reset()
	c.IRQEnabled = false
	c.eiPending = false
	c.Halted = false
	c.Cycles = 0
}

// LoadProgram writes raw bytes onto the bus at addr, via the bus's own
// LoadProgram when available, mirroring the teacher's quick-fixture
// convenience.
func (c *CPU) LoadProgram(program []byte, addr uint16) {
	if b, ok := c.Bus.(*mem.Bus); ok {
		b.LoadProgram(program, addr)
		return
	}
	for i, v := range program {
		c.Bus.Write(addr+uint16(i), v)
	}
}

// get8 resolves an R8 operand, reading through (HL) when the operand is the
// indirect slot.
func (c *CPU) get8(r R8) byte {
	if r == RegHLInd {
		return c.Bus.Read(c.Reg.Get16(RegHL))
	}
	return c.Reg.Get8(r)
}

// set8 resolves an R8 operand for writing, through (HL) when indirect.
func (c *CPU) set8(r R8, v byte) {
	if r == RegHLInd {
		c.Bus.Write(c.Reg.Get16(RegHL), v)
		return
	}
	c.Reg.Set8(r, v)
}

// fetch8 reads the byte at PC and advances PC by one.
func (c *CPU) fetch8() byte {
	if c.Reg.PC == 0xFFFF {
		panic(fmt.Sprintf("cpu: fetch at top of address space (PC=%#04x)", c.Reg.PC))
	}
	v := c.Bus.Read(c.Reg.PC)
	c.Reg.PC++
	return v
}

// fetch16 reads the little-endian word at PC and advances PC by two.
func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return merge(lo, hi)
}

// push16 decrements SP by two and writes v at the new SP, little-endian.
func (c *CPU) push16(v uint16) {
	if c.Reg.SP < 2 {
		panic(fmt.Sprintf("cpu: stack underflow pushing at SP=%#04x", c.Reg.SP))
	}
	lo, hi := split(v)
	c.Reg.SP--
	c.Bus.Write(c.Reg.SP, hi)
	c.Reg.SP--
	c.Bus.Write(c.Reg.SP, lo)
}

// pop16 reads the little-endian word at SP and increments SP by two.
func (c *CPU) pop16() uint16 {
	lo := c.Bus.Read(c.Reg.SP)
	c.Reg.SP++
	hi := c.Bus.Read(c.Reg.SP)
	c.Reg.SP++
	return merge(lo, hi)
}

// Step fetches, decodes and executes one instruction (transparently
// following a CB prefix byte), and returns the number of cycles it took.
func (c *CPU) Step() byte {
	if c.Halted {
		c.Cycles++
		return 1
	}

	pendingEI := c.eiPending
	c.eiPending = false

	op := c.fetch8()

	var instr Instruction
	if op == 0xCB {
		sub := c.fetch8()
		instr = extendedTable[sub]
	} else {
		instr = baseTable[op]
	}

	extra := instr.Execute(c)
	cycles := instr.Cycles + extra
	c.Cycles += uint64(cycles)

	if pendingEI {
		c.IRQEnabled = true
	}

	return cycles
}

func (c *CPU) warnUnimplemented(op byte, prefixed bool) byte {
	if prefixed {
		log.Printf("cpu: unimplemented opcode CB %#02x at PC=%#04x", op, c.Reg.PC-1)
	} else {
		log.Printf("cpu: unimplemented opcode %#02x at PC=%#04x", op, c.Reg.PC-1)
	}
	return 0
}
