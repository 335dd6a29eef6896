package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"gbz80/mem"
)

// model is the bubbletea model backing Debug. It single-steps the CPU and
// renders a memory page table alongside the register/flag status panel.
type model struct {
	cpu     *CPU
	program []byte

	offset uint16 // only for drawing pageTable
	prevPC uint16
	error  error
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m model) Init() tea.Cmd {
	m.cpu.LoadProgram(m.program, m.offset)
	m.cpu.Reg.PC = m.offset
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.cpu.Reg.PC
			func() {
				defer func() {
					if r := recover(); r != nil {
						m.error = fmt.Errorf("%v", r)
					}
				}()
				m.cpu.Step()
			}()
			if m.error != nil {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// renderPage renders a single page as a line. The current PC is highlighted.
func (m model) renderPage(start uint16, read func(uint16) byte) string {
	if start%16 != 0 {
		panic("start must be a multiple of 16")
	}
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		b := read(addr)
		if addr == m.cpu.Reg.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	r := &m.cpu.Reg
	var flags string
	for _, on := range []bool{r.FlagZ(), r.FlagN(), r.FlagH(), r.FlagC()} {
		if on {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
SP: %04x
 A: %02x   F: %02x
 B: %02x   C: %02x
 D: %02x   E: %02x
 H: %02x   L: %02x
Z N H C
`,
		r.PC, m.prevPC,
		r.SP,
		r.Get8(RegA), r.F(),
		r.Get8(RegB), r.Get8(RegC),
		r.Get8(RegD), r.Get8(RegE),
		r.Get8(RegH), r.Get8(RegL),
	) + flags
}

func (m model) pageTable() string {
	header := "page | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}

	read := func(addr uint16) byte { return m.cpu.Bus.Read(addr) }

	lines := []string{header}
	offsets := []int{
		0, 16, 32, 48, 64,
		int(m.offset),
		int(m.offset + 16*1),
		int(m.offset + 16*2),
		int(m.offset + 16*3),
		int(m.offset + 16*4),
	}
	for _, i := range offsets {
		lines = append(lines, m.renderPage(uint16(i), read))
	}
	return strings.Join(lines, "\n")
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m model) View() string {
	op := m.cpu.Bus.Read(m.cpu.Reg.PC)
	var instr Instruction
	if op == 0xCB {
		instr = extendedTable[m.cpu.Bus.Read(m.cpu.Reg.PC+1)]
	} else {
		instr = baseTable[op]
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(instr),
	)
}

// Debug loads the program into memory at the given offset, then starts an
// interactive TUI that single-steps the CPU.
func (c *CPU) Debug(program []byte, offset uint16) {
	if _, ok := c.Bus.(*mem.Bus); !ok {
		c.Bus = mem.NewBus()
	}
	m, err := tea.NewProgram(model{
		cpu:     c,
		program: program,
		offset:  offset,
	}).Run()
	if err != nil {
		panic(err)
	}
	x := m.(model)
	if x.error != nil {
		fmt.Println("Error:", x.error)
	}
}
