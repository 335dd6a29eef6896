package cpu

// condition names the four branch conditions JR/JP/CALL/RET can test, plus
// the always-taken case.
type condition byte

const (
	condNone condition = iota
	condNZ
	condZ
	condNC
	condC
)

func (cond condition) String() string {
	switch cond {
	case condNZ:
		return "NZ,"
	case condZ:
		return "Z,"
	case condNC:
		return "NC,"
	case condC:
		return "C,"
	default:
		return ""
	}
}

func (c *CPU) checkCond(cond condition) bool {
	switch cond {
	case condNZ:
		return !c.Reg.FlagZ()
	case condZ:
		return c.Reg.FlagZ()
	case condNC:
		return !c.Reg.FlagC()
	case condC:
		return c.Reg.FlagC()
	default:
		return true
	}
}
