package cpu

import "fmt"

// baseTable is the 256-entry dispatch table for non-CB-prefixed opcodes,
// built once at package init time from the factory functions below rather
// than hand-written out as 256 literal struct entries.
var baseTable [256]Instruction

// extendedTable is the 256-entry dispatch table for CB-prefixed opcodes. See
// opcodes_cb.go.
var extendedTable [256]Instruction

// r8Order is the fixed operand encoding order every 8-bit opcode group
// shares: B, C, D, E, H, L, (HL), A.
var r8Order = [8]R8{RegB, RegC, RegD, RegE, RegH, RegL, RegHLInd, RegA}

// rp16sp is the register-pair encoding used by opcodes that reference SP
// (LD rr,d16 / INC rr / DEC rr / ADD HL,rr).
var rp16sp = [4]R16{RegBC, RegDE, RegHL, RegSP}

// rp16af is the register-pair encoding used by PUSH/POP, which reference AF
// instead of SP.
var rp16af = [4]R16{RegBC, RegDE, RegHL, RegAF}

func unimplemented(op byte, prefixed bool) Instruction {
	return Instruction{
		Name:   fmt.Sprintf("UNIMPLEMENTED(%#02x)", op),
		Cycles: 1,
		Execute: func(c *CPU) byte {
			return c.warnUnimplemented(op, prefixed)
		},
	}
}

func init() {
	for i := range baseTable {
		baseTable[i] = unimplemented(byte(i), false)
	}

	buildLoadBlock()
	buildALUBlock()
	buildIncDecBlock()
	buildImmediateLoads()
	build16BitBlock()
	buildControlFlow()
	buildMisc()

	buildExtendedTable()
}

// buildLoadBlock fills the 0x40-0x7F LD r,r' block. 0x76 (LD (HL),(HL)) is
// HALT on real hardware and is overridden by buildMisc.
func buildLoadBlock() {
	for dstIdx, dst := range r8Order {
		for srcIdx, src := range r8Order {
			op := byte(0x40 + dstIdx*8 + srcIdx)
			baseTable[op] = ldR8R8(dst, src)
		}
	}
}

func ldR8R8(dst, src R8) Instruction {
	cycles := byte(1)
	if dst == RegHLInd || src == RegHLInd {
		cycles = 2
	}
	return Instruction{
		Name:   fmt.Sprintf("LD %s,%s", dst, src),
		Cycles: cycles,
		Execute: func(c *CPU) byte {
			loadReg(c, dst, c.get8(src))
			return 0
		},
	}
}

// buildALUBlock fills the 0x80-0xBF ALU A,r block.
func buildALUBlock() {
	ops := [8]aluOp{aluAdd, aluAdc, aluSub, aluSbc, aluAnd, aluXor, aluOr, aluCp}
	names := [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}
	for opIdx, op := range ops {
		for srcIdx, src := range r8Order {
			code := byte(0x80 + opIdx*8 + srcIdx)
			baseTable[code] = aluR8(op, names[opIdx], src)
		}
	}
}

func aluR8(op aluOp, name string, src R8) Instruction {
	cycles := byte(1)
	if src == RegHLInd {
		cycles = 2
	}
	opName := name + " A," + src.String()
	if op == aluAnd || op == aluXor || op == aluOr || op == aluCp {
		opName = name + " " + src.String()
	}
	return Instruction{
		Name:   opName,
		Cycles: cycles,
		Execute: func(c *CPU) byte {
			alu8(c, op, c.get8(src))
			return 0
		},
	}
}

func aluImm8(op aluOp, name string) Instruction {
	return Instruction{
		Name:   name + " A,d8",
		Cycles: 2,
		Execute: func(c *CPU) byte {
			alu8(c, op, c.fetch8())
			return 0
		},
	}
}

// buildIncDecBlock fills the scattered INC r / DEC r single-register slots.
func buildIncDecBlock() {
	for i, r := range r8Order {
		incOp := byte(0x04 + i*8)
		decOp := byte(0x05 + i*8)
		baseTable[incOp] = incR8(r)
		baseTable[decOp] = decR8(r)
	}
}

func incR8(r R8) Instruction {
	cycles := byte(1)
	if r == RegHLInd {
		cycles = 3
	}
	return Instruction{
		Name:   "INC " + r.String(),
		Cycles: cycles,
		Execute: func(c *CPU) byte {
			incDec8(c, r, true)
			return 0
		},
	}
}

func decR8(r R8) Instruction {
	cycles := byte(1)
	if r == RegHLInd {
		cycles = 3
	}
	return Instruction{
		Name:   "DEC " + r.String(),
		Cycles: cycles,
		Execute: func(c *CPU) byte {
			incDec8(c, r, false)
			return 0
		},
	}
}

// buildImmediateLoads fills LD r,d8 and the 8-bit ALU-immediate opcodes.
func buildImmediateLoads() {
	for i, r := range r8Order {
		op := byte(0x06 + i*8)
		baseTable[op] = ldR8Imm8(r)
	}

	ops := [8]aluOp{aluAdd, aluAdc, aluSub, aluSbc, aluAnd, aluXor, aluOr, aluCp}
	names := [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}
	for i, op := range ops {
		code := byte(0xC6 + i*8)
		baseTable[code] = aluImm8(op, names[i])
	}
}

func ldR8Imm8(dst R8) Instruction {
	cycles := byte(2)
	if dst == RegHLInd {
		cycles = 3
	}
	return Instruction{
		Name:   "LD " + dst.String() + ",d8",
		Cycles: cycles,
		Execute: func(c *CPU) byte {
			loadReg(c, dst, c.fetch8())
			return 0
		},
	}
}

// build16BitBlock fills LD rr,d16 / INC rr / DEC rr / ADD HL,rr / PUSH /
// POP / RST.
func build16BitBlock() {
	for i, pair := range rp16sp {
		baseTable[byte(0x01+i*0x10)] = ldRRImm16(pair)
		baseTable[byte(0x03+i*0x10)] = incRR16(pair)
		baseTable[byte(0x0B+i*0x10)] = decRR16(pair)
		baseTable[byte(0x09+i*0x10)] = addHLrr(pair)
	}

	for i, pair := range rp16af {
		baseTable[byte(0xC1+i*0x10)] = popRR(pair)
		baseTable[byte(0xC5+i*0x10)] = pushRR(pair)
	}

	vectors := [8]byte{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38}
	for i, v := range vectors {
		code := byte(0xC7 + i*8)
		baseTable[code] = rst(v)
	}
}

func ldRRImm16(pair R16) Instruction {
	return Instruction{
		Name:   "LD " + pair.String() + ",d16",
		Cycles: 3,
		Execute: func(c *CPU) byte {
			c.Reg.Set16(pair, c.fetch16())
			return 0
		},
	}
}

func incRR16(pair R16) Instruction {
	return Instruction{
		Name:   "INC " + pair.String(),
		Cycles: 2,
		Execute: func(c *CPU) byte {
			incDec16(c, pair, true)
			return 0
		},
	}
}

func decRR16(pair R16) Instruction {
	return Instruction{
		Name:   "DEC " + pair.String(),
		Cycles: 2,
		Execute: func(c *CPU) byte {
			incDec16(c, pair, false)
			return 0
		},
	}
}

func addHLrr(pair R16) Instruction {
	return Instruction{
		Name:   "ADD HL," + pair.String(),
		Cycles: 2,
		Execute: func(c *CPU) byte {
			hl := c.Reg.Get16(RegHL)
			v := c.Reg.Get16(pair)
			res, carry, half := add16(hl, v)
			c.Reg.Set16(RegHL, res)
			c.Reg.SetNHC(false, half, carry)
			return 0
		},
	}
}

func pushRR(pair R16) Instruction {
	return Instruction{
		Name:   "PUSH " + pair.String(),
		Cycles: 4,
		Execute: func(c *CPU) byte {
			push(c, pair)
			return 0
		},
	}
}

func popRR(pair R16) Instruction {
	return Instruction{
		Name:   "POP " + pair.String(),
		Cycles: 3,
		Execute: func(c *CPU) byte {
			pop(c, pair)
			return 0
		},
	}
}

func rst(vector byte) Instruction {
	return Instruction{
		Name:   fmt.Sprintf("RST %#02x", vector),
		Cycles: 4,
		Execute: func(c *CPU) byte {
			call(c, uint16(vector))
			return 0
		},
	}
}

// buildControlFlow fills JR / JP / CALL / RET and their conditional forms.
func buildControlFlow() {
	baseTable[0x18] = jr(condNone)
	baseTable[0x20] = jr(condNZ)
	baseTable[0x28] = jr(condZ)
	baseTable[0x30] = jr(condNC)
	baseTable[0x38] = jr(condC)

	baseTable[0xC3] = jpImm16(condNone)
	baseTable[0xC2] = jpImm16(condNZ)
	baseTable[0xCA] = jpImm16(condZ)
	baseTable[0xD2] = jpImm16(condNC)
	baseTable[0xDA] = jpImm16(condC)

	baseTable[0xCD] = callImm16(condNone)
	baseTable[0xC4] = callImm16(condNZ)
	baseTable[0xCC] = callImm16(condZ)
	baseTable[0xD4] = callImm16(condNC)
	baseTable[0xDC] = callImm16(condC)

	baseTable[0xC9] = retOp(condNone)
	baseTable[0xC0] = retOp(condNZ)
	baseTable[0xC8] = retOp(condZ)
	baseTable[0xD0] = retOp(condNC)
	baseTable[0xD8] = retOp(condC)

	baseTable[0xE9] = Instruction{
		Name:   "JP (HL)",
		Cycles: 1,
		Execute: func(c *CPU) byte {
			jumpAbs(c, c.Reg.Get16(RegHL))
			return 0
		},
	}

	baseTable[0xD9] = Instruction{
		Name:   "RETI",
		Cycles: 4,
		Execute: func(c *CPU) byte {
			retPrim(c)
			c.IRQEnabled = true
			return 0
		},
	}
}

func jr(cond condition) Instruction {
	base := byte(2)
	if cond == condNone {
		base = 3
	}
	return Instruction{
		Name:   "JR " + cond.String() + "r8",
		Cycles: base,
		Execute: func(c *CPU) byte {
			offset := c.fetch8()
			if c.checkCond(cond) {
				jumpRel(c, offset)
				if cond != condNone {
					return 1
				}
			}
			return 0
		},
	}
}

func jpImm16(cond condition) Instruction {
	base := byte(3)
	if cond == condNone {
		base = 4
	}
	return Instruction{
		Name:   "JP " + cond.String() + "a16",
		Cycles: base,
		Execute: func(c *CPU) byte {
			addr := c.fetch16()
			if c.checkCond(cond) {
				jumpAbs(c, addr)
				if cond != condNone {
					return 1
				}
			}
			return 0
		},
	}
}

func callImm16(cond condition) Instruction {
	base := byte(3)
	if cond == condNone {
		base = 6
	}
	return Instruction{
		Name:   "CALL " + cond.String() + "a16",
		Cycles: base,
		Execute: func(c *CPU) byte {
			addr := c.fetch16()
			if c.checkCond(cond) {
				call(c, addr)
				if cond != condNone {
					return 3
				}
			}
			return 0
		},
	}
}

// retOp is the RET opcode factory (conditional and unconditional forms). Not
// to be confused with retPrim in primitives.go, the bare stack-pop-into-PC
// primitive it and RETI both call.
func retOp(cond condition) Instruction {
	base := byte(2)
	if cond == condNone {
		base = 4
	}
	return Instruction{
		Name:   "RET " + cond.String(),
		Cycles: base,
		Execute: func(c *CPU) byte {
			if c.checkCond(cond) {
				retPrim(c)
				if cond != condNone {
					return 3
				}
			}
			return 0
		},
	}
}

// buildMisc fills the remaining fixed-encoding single-opcode slots: NOP,
// the accumulator rotate/flag opcodes, the indirect A loads, the stack/SP
// opcodes, and EI/DI/HALT/STOP.
func buildMisc() {
	baseTable[0x00] = Instruction{Name: "NOP", Cycles: 1, Execute: func(c *CPU) byte { return 0 }}

	baseTable[0x07] = rotateAccumulator("RLCA", rotRLC)
	baseTable[0x0F] = rotateAccumulator("RRCA", rotRRC)
	baseTable[0x17] = rotateAccumulator("RLA", rotRL)
	baseTable[0x1F] = rotateAccumulator("RRA", rotRR)

	baseTable[0x02] = ldIndirectFromA(RegBC, 0)
	baseTable[0x12] = ldIndirectFromA(RegDE, 0)
	baseTable[0x22] = ldIndirectFromA(RegHL, +1)
	baseTable[0x32] = ldIndirectFromA(RegHL, -1)

	baseTable[0x0A] = ldAFromIndirect(RegBC, 0)
	baseTable[0x1A] = ldAFromIndirect(RegDE, 0)
	baseTable[0x2A] = ldAFromIndirect(RegHL, +1)
	baseTable[0x3A] = ldAFromIndirect(RegHL, -1)

	baseTable[0x08] = Instruction{
		Name:   "LD (a16),SP",
		Cycles: 5,
		Execute: func(c *CPU) byte {
			addr := c.fetch16()
			lo, hi := split(c.Reg.SP)
			c.Bus.Write(addr, lo)
			c.Bus.Write(addr+1, hi)
			return 0
		},
	}

	baseTable[0xE0] = Instruction{
		Name:   "LDH (a8),A",
		Cycles: 3,
		Execute: func(c *CPU) byte {
			addr := 0xFF00 + uint16(c.fetch8())
			c.Bus.Write(addr, c.Reg.Get8(RegA))
			return 0
		},
	}
	baseTable[0xF0] = Instruction{
		Name:   "LDH A,(a8)",
		Cycles: 3,
		Execute: func(c *CPU) byte {
			addr := 0xFF00 + uint16(c.fetch8())
			c.Reg.Set8(RegA, c.Bus.Read(addr))
			return 0
		},
	}
	baseTable[0xE2] = Instruction{
		Name:   "LD (C),A",
		Cycles: 2,
		Execute: func(c *CPU) byte {
			addr := 0xFF00 + uint16(c.Reg.Get8(RegC))
			c.Bus.Write(addr, c.Reg.Get8(RegA))
			return 0
		},
	}
	baseTable[0xF2] = Instruction{
		Name:   "LD A,(C)",
		Cycles: 2,
		Execute: func(c *CPU) byte {
			addr := 0xFF00 + uint16(c.Reg.Get8(RegC))
			c.Reg.Set8(RegA, c.Bus.Read(addr))
			return 0
		},
	}
	baseTable[0xEA] = Instruction{
		Name:   "LD (a16),A",
		Cycles: 4,
		Execute: func(c *CPU) byte {
			addr := c.fetch16()
			c.Bus.Write(addr, c.Reg.Get8(RegA))
			return 0
		},
	}
	baseTable[0xFA] = Instruction{
		Name:   "LD A,(a16)",
		Cycles: 4,
		Execute: func(c *CPU) byte {
			addr := c.fetch16()
			c.Reg.Set8(RegA, c.Bus.Read(addr))
			return 0
		},
	}

	baseTable[0xE8] = Instruction{
		Name:   "ADD SP,r8",
		Cycles: 4,
		Execute: func(c *CPU) byte {
			r8 := c.fetch8()
			sum, carry, half := add16(c.Reg.SP, signExtend8to16(r8))
			c.Reg.SP = sum
			c.Reg.SetFlags(false, false, half, carry)
			return 0
		},
	}
	baseTable[0xF8] = Instruction{
		Name:   "LD HL,SP+r8",
		Cycles: 3,
		Execute: func(c *CPU) byte {
			r8 := c.fetch8()
			sum, carry, half := add16(c.Reg.SP, signExtend8to16(r8))
			c.Reg.Set16(RegHL, sum)
			c.Reg.SetFlags(false, false, half, carry)
			return 0
		},
	}
	baseTable[0xF9] = Instruction{
		Name:   "LD SP,HL",
		Cycles: 2,
		Execute: func(c *CPU) byte {
			c.Reg.SP = c.Reg.Get16(RegHL)
			return 0
		},
	}

	baseTable[0x27] = Instruction{Name: "DAA", Cycles: 1, Execute: opDAA}
	baseTable[0x2F] = Instruction{
		Name:   "CPL",
		Cycles: 1,
		Execute: func(c *CPU) byte {
			c.Reg.Set8(RegA, ^c.Reg.Get8(RegA))
			c.Reg.SetFlags(c.Reg.FlagZ(), true, true, c.Reg.FlagC())
			return 0
		},
	}
	baseTable[0x37] = Instruction{
		Name:   "SCF",
		Cycles: 1,
		Execute: func(c *CPU) byte {
			c.Reg.SetFlags(c.Reg.FlagZ(), false, false, true)
			return 0
		},
	}
	baseTable[0x3F] = Instruction{
		Name:   "CCF",
		Cycles: 1,
		Execute: func(c *CPU) byte {
			c.Reg.SetFlags(c.Reg.FlagZ(), false, false, !c.Reg.FlagC())
			return 0
		},
	}

	baseTable[0x76] = Instruction{
		Name:   "HALT",
		Cycles: 1,
		Execute: func(c *CPU) byte {
			c.Halted = true
			return 0
		},
	}
	baseTable[0x10] = Instruction{
		Name:   "STOP",
		Cycles: 1,
		Execute: func(c *CPU) byte {
			c.fetch8() // the trailing padding byte every STOP encoding carries
			return 0
		},
	}
	baseTable[0xF3] = Instruction{
		Name:   "DI",
		Cycles: 1,
		Execute: func(c *CPU) byte {
			c.IRQEnabled = false
			c.eiPending = false
			return 0
		},
	}
	baseTable[0xFB] = Instruction{
		Name:   "EI",
		Cycles: 1,
		Execute: func(c *CPU) byte {
			c.eiPending = true
			return 0
		},
	}
}

func rotateAccumulator(name string, kind rotateKind) Instruction {
	return Instruction{
		Name:   name,
		Cycles: 1,
		Execute: func(c *CPU) byte {
			v := c.Reg.Get8(RegA)
			res, carry := rotate(kind, v, c.Reg.FlagC())
			c.Reg.Set8(RegA, res)
			c.Reg.SetFlags(false, false, false, carry)
			return 0
		},
	}
}

func ldIndirectFromA(pair R16, step int) Instruction {
	name := "LD (" + pair.String() + "),A"
	if step > 0 {
		name = "LD (HL+),A"
	} else if step < 0 {
		name = "LD (HL-),A"
	}
	return Instruction{
		Name:   name,
		Cycles: 2,
		Execute: func(c *CPU) byte {
			addr := c.Reg.Get16(pair)
			c.Bus.Write(addr, c.Reg.Get8(RegA))
			if step != 0 {
				c.Reg.Set16(pair, uint16(int32(addr)+int32(step)))
			}
			return 0
		},
	}
}

func ldAFromIndirect(pair R16, step int) Instruction {
	name := "LD A,(" + pair.String() + ")"
	if step > 0 {
		name = "LD A,(HL+)"
	} else if step < 0 {
		name = "LD A,(HL-)"
	}
	return Instruction{
		Name:   name,
		Cycles: 2,
		Execute: func(c *CPU) byte {
			addr := c.Reg.Get16(pair)
			c.Reg.Set8(RegA, c.Bus.Read(addr))
			if step != 0 {
				c.Reg.Set16(pair, uint16(int32(addr)+int32(step)))
			}
			return 0
		},
	}
}

// opDAA implements the binary-coded-decimal adjust after an 8-bit add or
// subtract, following the correction table every DMG reference lists.
func opDAA(c *CPU) byte {
	a := c.Reg.Get8(RegA)
	n := c.Reg.FlagN()
	h := c.Reg.FlagH()
	carryIn := c.Reg.FlagC()

	var adjust byte
	carryOut := carryIn
	if !n {
		if carryIn || a > 0x99 {
			adjust |= 0x60
			carryOut = true
		}
		if h || a&0x0F > 0x09 {
			adjust |= 0x06
		}
		a += adjust
	} else {
		if carryIn {
			adjust |= 0x60
		}
		if h {
			adjust |= 0x06
		}
		a -= adjust
	}

	c.Reg.Set8(RegA, a)
	c.Reg.SetFlags(a == 0, n, false, carryOut)
	return 0
}
