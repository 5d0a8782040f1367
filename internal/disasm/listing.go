package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/memory"
)

const (
	labelNaming = "_label_%04x"
	funcNaming  = "_func_%04x"
	dataNaming  = "_data_%04x"
	startLabel  = "Start"
	opcodeSize  = 2
)

type offsetType uint8

const (
	unknownOffset offsetType = iota
	codeOffset
	codeAsData // second byte of an instruction
	dataOffset
)

type offset struct {
	kind  offsetType
	label string
	code  string
}

// listing traces the reachable code of a program starting at the program
// start address. Everything not reached is output as data.
type listing struct {
	program []byte
	offsets []offset
	queue   []uint16
}

// Listing writes a disassembly of the program. Code is found by following
// the control flow from the program start, jumps through V0 are not
// followed.
func Listing(w io.Writer, program []byte) error {
	l := &listing{
		program: program,
		offsets: make([]offset, len(program)),
	}
	l.addAddressToParse(memory.ProgramStart, startLabel)
	l.parse()
	return l.write(w)
}

// addAddressToParse queues an address for parsing and sets the label if
// the address does not have one yet.
func (l *listing) addAddressToParse(address uint16, label string) {
	index, ok := l.index(address)
	if !ok {
		return
	}
	if label != "" && l.offsets[index].label == "" {
		l.offsets[index].label = label
	}
	l.queue = append(l.queue, address)
}

func (l *listing) parse() {
	for len(l.queue) > 0 {
		address := l.queue[0]
		l.queue = l.queue[1:]

		index, _ := l.index(address)
		if index+1 >= len(l.program) || l.overlapsCode(index) {
			continue
		}

		opcode := uint16(l.program[index])<<8 | uint16(l.program[index+1])
		code, ok := mnemonic(opcode)
		if !ok || isMachineCode(opcode) {
			continue
		}

		l.offsets[index].kind = codeOffset
		l.offsets[index].code = code
		l.offsets[index+1].kind = codeAsData
		l.handleControlFlow(address, opcode)
	}
}

// overlapsCode returns whether an instruction at the index would be or
// overlap an already decoded instruction.
func (l *listing) overlapsCode(index int) bool {
	return l.offsets[index].kind == codeOffset ||
		l.offsets[index].kind == codeAsData ||
		l.offsets[index+1].kind == codeOffset
}

// handleControlFlow queues the addresses that can follow the instruction.
func (l *listing) handleControlFlow(address, opcode uint16) {
	next := address + opcodeSize
	target := opcode & 0x0FFF

	switch {
	case opcode == 0x00EE, opcode == 0x00FD:
		// return and exit end the flow

	case opcode&0xF000 == 0x1000:
		l.addAddressToParse(target, fmt.Sprintf(labelNaming, target))

	case opcode&0xF000 == 0xB000:
		// the target depends on V0

	case opcode&0xF000 == 0x2000:
		l.addAddressToParse(target, fmt.Sprintf(funcNaming, target))
		l.addAddressToParse(next, "")

	case isSkip(opcode):
		l.addAddressToParse(next, "")
		l.addAddressToParse(next+opcodeSize, "")

	case opcode&0xF000 == 0xA000:
		l.markData(target)
		l.addAddressToParse(next, "")

	default:
		l.addAddressToParse(next, "")
	}
}

// markData labels the target of an index register load as data.
func (l *listing) markData(address uint16) {
	index, ok := l.index(address)
	if !ok || l.offsets[index].kind != unknownOffset {
		return
	}
	l.offsets[index].kind = dataOffset
	if l.offsets[index].label == "" {
		l.offsets[index].label = fmt.Sprintf(dataNaming, address)
	}
}

// index converts a memory address to an offset into the program, addresses
// outside of the program are not valid.
func (l *listing) index(address uint16) (int, bool) {
	if address < memory.ProgramStart {
		return 0, false
	}
	index := int(address - memory.ProgramStart)
	return index, index < len(l.program)
}

func (l *listing) write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", memory.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	for i := 0; i < len(l.offsets); {
		offset := l.offsets[i]
		address := memory.ProgramStart + i

		if offset.label != "" {
			if _, err := fmt.Fprintf(w, "%s:\n", offset.label); err != nil {
				return fmt.Errorf("writing label %s: %w", offset.label, err)
			}
		}

		if offset.kind == codeOffset {
			line := "    " + offset.code
			if _, err := fmt.Fprintf(w, "%-32s ; $%04X %02X %02X\n", line, address, l.program[i], l.program[i+1]); err != nil {
				return fmt.Errorf("writing code: %w", err)
			}
			// a jump into the second byte of the instruction
			if inner := l.offsets[i+1].label; inner != "" {
				if _, err := fmt.Fprintf(w, "%s = $%04X\n", inner, address+1); err != nil {
					return fmt.Errorf("writing label %s: %w", inner, err)
				}
			}
			i += opcodeSize
			continue
		}

		end := l.dataEnd(i)
		if _, err := fmt.Fprintf(w, "%-32s ; $%04X\n", dataLine(l.program[i:end]), address); err != nil {
			return fmt.Errorf("writing data: %w", err)
		}
		i = end
	}
	return nil
}

// dataEnd returns the end of the data block starting at the index. A block
// ends at 8 bytes, at a label or at code.
func (l *listing) dataEnd(start int) int {
	end := start + 1
	for end < len(l.offsets) && end-start < 8 {
		next := l.offsets[end]
		if next.label != "" || next.kind == codeOffset {
			break
		}
		end++
	}
	return end
}

func dataLine(data []byte) string {
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("    .byte $%02X", data[0]))
	for _, b := range data[1:] {
		buf.WriteString(fmt.Sprintf(", $%02X", b))
	}
	return buf.String()
}

// isMachineCode returns whether the opcode calls a machine code routine of
// the COSMAC VIP, which ends the traceable code.
func isMachineCode(opcode uint16) bool {
	if opcode&0xF000 != 0 {
		return false
	}
	if opcode == 0x00E0 || opcode == 0x00EE {
		return false
	}
	_, extended := extendedMnemonic(opcode)
	return !extended
}

func isSkip(opcode uint16) bool {
	switch opcode & 0xF000 {
	case 0x3000, 0x4000, 0x5000, 0x9000:
		return true
	case 0xE000:
		return opcode&0x00FF == 0x9E || opcode&0x00FF == 0xA1
	}
	return false
}
