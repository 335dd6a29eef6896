package cpu

import "fmt"

var rotateNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// buildExtendedTable fills the 256-entry CB-prefixed table. The encoding is
// fully regular: bits 0-2 select the operand (the same B,C,D,E,H,L,(HL),A
// order the base table uses), and the remaining bits select which of the
// four operation groups -- rotate/shift, BIT, RES, SET -- and, for the
// latter three, which bit index.
func buildExtendedTable() {
	for op := 0; op < 256; op++ {
		cb := byte(op)
		reg := r8Order[cb&0x07]

		switch {
		case cb < 0x40:
			kind := rotateKind((cb >> 3) & 0x07)
			extendedTable[cb] = cbRotate(kind, reg)
		case cb < 0x80:
			y := (cb >> 3) & 0x07
			extendedTable[cb] = cbBit(y, reg)
		case cb < 0xC0:
			y := (cb >> 3) & 0x07
			extendedTable[cb] = cbRes(y, reg)
		default:
			y := (cb >> 3) & 0x07
			extendedTable[cb] = cbSet(y, reg)
		}
	}
}

func cbRotate(kind rotateKind, reg R8) Instruction {
	cycles := byte(2)
	if reg == RegHLInd {
		cycles = 4
	}
	return Instruction{
		Name:   rotateNames[kind] + " " + reg.String(),
		Cycles: cycles,
		Execute: func(c *CPU) byte {
			v := c.get8(reg)
			res, carry := rotate(kind, v, c.Reg.FlagC())
			c.set8(reg, res)
			c.Reg.SetFlags(res == 0, false, false, carry)
			return 0
		},
	}
}

func cbBit(y byte, reg R8) Instruction {
	cycles := byte(2)
	if reg == RegHLInd {
		cycles = 3 // read-only: no write-back half of the (HL) round trip
	}
	return Instruction{
		Name:   fmt.Sprintf("BIT %d,%s", y, reg),
		Cycles: cycles,
		Execute: func(c *CPU) byte {
			set := bitTest(c.get8(reg), y)
			c.Reg.SetFlags(!set, false, true, c.Reg.FlagC())
			return 0
		},
	}
}

func cbRes(y byte, reg R8) Instruction {
	cycles := byte(2)
	if reg == RegHLInd {
		cycles = 4
	}
	return Instruction{
		Name:   fmt.Sprintf("RES %d,%s", y, reg),
		Cycles: cycles,
		Execute: func(c *CPU) byte {
			c.set8(reg, c.get8(reg)&^(1<<y))
			return 0
		},
	}
}

func cbSet(y byte, reg R8) Instruction {
	cycles := byte(2)
	if reg == RegHLInd {
		cycles = 4
	}
	return Instruction{
		Name:   fmt.Sprintf("SET %d,%s", y, reg),
		Cycles: cycles,
		Execute: func(c *CPU) byte {
			c.set8(reg, c.get8(reg)|(1<<y))
			return 0
		},
	}
}
