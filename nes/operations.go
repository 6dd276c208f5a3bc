package nes

// execution is the scratch state of one instruction while it runs.
type execution struct {
	mode    addressingMode
	address effectiveAddress
	operand []byte
	extra   int // cycles added at run time, taken branches
}

// operation is what an instruction does, independent of its addressing mode. The steps
// run in order: fetch produces a value, store writes it back, effect applies anything
// else (carry, overflow, control flow), then the zero / negative bits named by flags are
// derived from the fetched value. Any step may be nil.
type operation struct {
	mnemonic string
	fetch    func(c *CPU, e *execution) (byte, error)
	store    func(c *CPU, e *execution, v byte) error
	effect   func(c *CPU, e *execution, v byte) error
	flags    flagPolicy
}

func (o *operation) run(c *CPU, e *execution) error {
	var v byte
	if o.fetch != nil {
		data, err := o.fetch(c, e)
		if err != nil {
			return err
		}
		v = data
	}
	if o.store != nil {
		if err := o.store(c, e, v); err != nil {
			return err
		}
	}
	if o.effect != nil {
		if err := o.effect(c, e, v); err != nil {
			return err
		}
	}
	c.p.update(o.flags, v)
	return nil
}

// load reads the operand: the immediate byte, the accumulator, or memory.
func (c *CPU) load(e *execution) (byte, error) {
	switch e.mode {
	case immediate:
		return e.operand[0], nil
	case accumulator:
		return c.a, nil
	}
	return c.bus.Read(e.address.value)
}

// Fetch steps.

func fetchA(c *CPU, _ *execution) (byte, error)    { return c.a, nil }
func fetchX(c *CPU, _ *execution) (byte, error)    { return c.x, nil }
func fetchY(c *CPU, _ *execution) (byte, error)    { return c.y, nil }
func fetchS(c *CPU, _ *execution) (byte, error)    { return c.s, nil }
func fetchAX(c *CPU, _ *execution) (byte, error)   { return c.a & c.x, nil }
func fetchLoad(c *CPU, e *execution) (byte, error) { return c.load(e) }
func fetchPull(c *CPU, _ *execution) (byte, error) { return c.pop() }

func fetchIncX(c *CPU, _ *execution) (byte, error) { return c.x + 1, nil }
func fetchIncY(c *CPU, _ *execution) (byte, error) { return c.y + 1, nil }
func fetchDecX(c *CPU, _ *execution) (byte, error) { return c.x - 1, nil }
func fetchDecY(c *CPU, _ *execution) (byte, error) { return c.y - 1, nil }

func fetchInc(c *CPU, e *execution) (byte, error) {
	m, err := c.load(e)
	return m + 1, err
}

func fetchDec(c *CPU, e *execution) (byte, error) {
	m, err := c.load(e)
	return m - 1, err
}

func fetchAnd(c *CPU, e *execution) (byte, error) {
	m, err := c.load(e)
	return c.a & m, err
}

func fetchOr(c *CPU, e *execution) (byte, error) {
	m, err := c.load(e)
	return c.a | m, err
}

func fetchXor(c *CPU, e *execution) (byte, error) {
	m, err := c.load(e)
	return c.a ^ m, err
}

func fetchADC(c *CPU, e *execution) (byte, error) {
	m, err := c.load(e)
	if err != nil {
		return 0, err
	}
	return c.addWithCarry(m), nil
}

// SBC is ADC of the one's complement, the carry acting as an inverted borrow.
func fetchSBC(c *CPU, e *execution) (byte, error) {
	m, err := c.load(e)
	if err != nil {
		return 0, err
	}
	return c.addWithCarry(^m), nil
}

func fetchCompare(reg func(c *CPU) byte) func(c *CPU, e *execution) (byte, error) {
	return func(c *CPU, e *execution) (byte, error) {
		m, err := c.load(e)
		if err != nil {
			return 0, err
		}
		return c.compare(reg(c), m), nil
	}
}

func fetchASL(c *CPU, e *execution) (byte, error) {
	m, err := c.load(e)
	if err != nil {
		return 0, err
	}
	c.p.c = m&0x80 != 0
	return m << 1, nil
}

func fetchLSR(c *CPU, e *execution) (byte, error) {
	m, err := c.load(e)
	if err != nil {
		return 0, err
	}
	c.p.c = m&0x01 != 0
	return m >> 1, nil
}

func fetchROL(c *CPU, e *execution) (byte, error) {
	m, err := c.load(e)
	if err != nil {
		return 0, err
	}
	var carry byte
	if c.p.c {
		carry = 1
	}
	c.p.c = m&0x80 != 0
	return m<<1 | carry, nil
}

func fetchROR(c *CPU, e *execution) (byte, error) {
	m, err := c.load(e)
	if err != nil {
		return 0, err
	}
	var carry byte
	if c.p.c {
		carry = 0x80
	}
	c.p.c = m&0x01 != 0
	return m>>1 | carry, nil
}

// Store steps.

func storeA(c *CPU, _ *execution, v byte) error {
	c.a = v
	return nil
}

func storeX(c *CPU, _ *execution, v byte) error {
	c.x = v
	return nil
}

func storeY(c *CPU, _ *execution, v byte) error {
	c.y = v
	return nil
}

func storeS(c *CPU, _ *execution, v byte) error {
	c.s = v
	return nil
}

func storeAX(c *CPU, _ *execution, v byte) error {
	c.a, c.x = v, v
	return nil
}

// storeMemory writes to the effective address, or to A in accumulator mode.
func storeMemory(c *CPU, e *execution, v byte) error {
	if e.mode == accumulator {
		c.a = v
		return nil
	}
	return c.bus.Write(e.address.value, v)
}

// Effect steps.

func setFlag(f func(p *status)) func(c *CPU, e *execution, v byte) error {
	return func(c *CPU, _ *execution, _ byte) error {
		f(c.p)
		return nil
	}
}

func branchIf(cond func(p *status) bool) func(c *CPU, e *execution, v byte) error {
	return func(c *CPU, e *execution, _ byte) error {
		if !cond(c.p) {
			return nil
		}
		// One more cycle when taken, another when the target is on a different page.
		e.extra++
		if e.address.crossed {
			e.extra++
		}
		c.pc = e.address.value
		return nil
	}
}

// BIT - Z from A AND M, V and N copied from bits 6 and 7 of M.
func effectBIT(c *CPU, _ *execution, m byte) error {
	c.p.z = c.a&m == 0
	c.p.v = m&0x40 != 0
	c.p.n = m&0x80 != 0
	return nil
}

func effectJMP(c *CPU, e *execution, _ byte) error {
	c.pc = e.address.value
	return nil
}

// JSR pushes the address of its own last byte, RTS adds the one back.
func effectJSR(c *CPU, e *execution, _ byte) error {
	if err := c.push16(c.pc - 1); err != nil {
		return err
	}
	c.pc = e.address.value
	return nil
}

func effectRTS(c *CPU, _ *execution, _ byte) error {
	pc, err := c.pop16()
	if err != nil {
		return err
	}
	c.pc = pc + 1
	return nil
}

func effectRTI(c *CPU, _ *execution, _ byte) error {
	if err := c.pullStatus(); err != nil {
		return err
	}
	pc, err := c.pop16()
	if err != nil {
		return err
	}
	c.pc = pc
	return nil
}

func effectPHA(c *CPU, _ *execution, _ byte) error {
	return c.push(c.a)
}

// PHP pushes the status with both break bits set.
func effectPHP(c *CPU, _ *execution, _ byte) error {
	return c.push(c.p.encode() | flagBreak1 | flagBreak2)
}

func effectPLP(c *CPU, _ *execution, _ byte) error {
	return c.pullStatus()
}

// BRK pushes PC+1 (the padding byte after the opcode is skipped) and the status with
// the break bits set, then vectors through IRQ/BRK or halts.
func effectBRK(c *CPU, _ *execution, _ byte) error {
	if err := c.push16(c.pc + 1); err != nil {
		return err
	}
	if err := c.push(c.p.encode() | flagBreak1 | flagBreak2); err != nil {
		return err
	}
	c.p.i = true
	if c.haltOnBreak {
		c.halted = true
		c.running = false
		return nil
	}
	pc, err := c.bus.Read16(0xFFFE)
	if err != nil {
		return err
	}
	c.pc = pc
	return nil
}

// effectCompareA finishes DCP, comparing A with the decremented memory.
func effectCompareA(c *CPU, _ *execution, v byte) error {
	c.p.update(updatesZN, c.compare(c.a, v))
	return nil
}

// effectSubtractA finishes ISB.
func effectSubtractA(c *CPU, _ *execution, v byte) error {
	c.a = c.addWithCarry(^v)
	c.p.update(updatesZN, c.a)
	return nil
}

func effectAddA(c *CPU, _ *execution, v byte) error {
	c.a = c.addWithCarry(v)
	c.p.update(updatesZN, c.a)
	return nil
}

func effectOrA(c *CPU, _ *execution, v byte) error {
	c.a |= v
	c.p.update(updatesZN, c.a)
	return nil
}

func effectAndA(c *CPU, _ *execution, v byte) error {
	c.a &= v
	c.p.update(updatesZN, c.a)
	return nil
}

func effectXorA(c *CPU, _ *execution, v byte) error {
	c.a ^= v
	c.p.update(updatesZN, c.a)
	return nil
}

// addWithCarry returns A + x + C, setting C on unsigned and V on signed overflow.
func (c *CPU) addWithCarry(x byte) byte {
	sum := uint16(c.a) + uint16(x)
	if c.p.c {
		sum++
	}
	r := byte(sum)
	c.p.c = sum > 0xFF
	// Overflow when both inputs share a sign that differs from the result's.
	c.p.v = (c.a^r)&(x^r)&0x80 != 0
	return r
}

// compare sets C when reg >= m and returns reg - m for the zero / negative bits.
func (c *CPU) compare(reg, m byte) byte {
	c.p.c = reg >= m
	return reg - m
}

// Operations.
// Reference: http://www.6502.org/tutorials/6502opcodes.html
var (
	// Load / store / transfer.
	opLDA = &operation{mnemonic: "LDA", fetch: fetchLoad, store: storeA, flags: updatesZN}
	opLDX = &operation{mnemonic: "LDX", fetch: fetchLoad, store: storeX, flags: updatesZN}
	opLDY = &operation{mnemonic: "LDY", fetch: fetchLoad, store: storeY, flags: updatesZN}
	opSTA = &operation{mnemonic: "STA", fetch: fetchA, store: storeMemory}
	opSTX = &operation{mnemonic: "STX", fetch: fetchX, store: storeMemory}
	opSTY = &operation{mnemonic: "STY", fetch: fetchY, store: storeMemory}
	opTAX = &operation{mnemonic: "TAX", fetch: fetchA, store: storeX, flags: updatesZN}
	opTAY = &operation{mnemonic: "TAY", fetch: fetchA, store: storeY, flags: updatesZN}
	opTSX = &operation{mnemonic: "TSX", fetch: fetchS, store: storeX, flags: updatesZN}
	opTXA = &operation{mnemonic: "TXA", fetch: fetchX, store: storeA, flags: updatesZN}
	opTXS = &operation{mnemonic: "TXS", fetch: fetchX, store: storeS}
	opTYA = &operation{mnemonic: "TYA", fetch: fetchY, store: storeA, flags: updatesZN}

	// Arithmetic and logic.
	opADC = &operation{mnemonic: "ADC", fetch: fetchADC, store: storeA, flags: updatesZN}
	opSBC = &operation{mnemonic: "SBC", fetch: fetchSBC, store: storeA, flags: updatesZN}
	opAND = &operation{mnemonic: "AND", fetch: fetchAnd, store: storeA, flags: updatesZN}
	opORA = &operation{mnemonic: "ORA", fetch: fetchOr, store: storeA, flags: updatesZN}
	opEOR = &operation{mnemonic: "EOR", fetch: fetchXor, store: storeA, flags: updatesZN}
	opBIT = &operation{mnemonic: "BIT", fetch: fetchLoad, effect: effectBIT}
	opCMP = &operation{mnemonic: "CMP", fetch: fetchCompare(func(c *CPU) byte { return c.a }), flags: updatesZN}
	opCPX = &operation{mnemonic: "CPX", fetch: fetchCompare(func(c *CPU) byte { return c.x }), flags: updatesZN}
	opCPY = &operation{mnemonic: "CPY", fetch: fetchCompare(func(c *CPU) byte { return c.y }), flags: updatesZN}

	// Increments and shifts.
	opINC = &operation{mnemonic: "INC", fetch: fetchInc, store: storeMemory, flags: updatesZN}
	opDEC = &operation{mnemonic: "DEC", fetch: fetchDec, store: storeMemory, flags: updatesZN}
	opINX = &operation{mnemonic: "INX", fetch: fetchIncX, store: storeX, flags: updatesZN}
	opINY = &operation{mnemonic: "INY", fetch: fetchIncY, store: storeY, flags: updatesZN}
	opDEX = &operation{mnemonic: "DEX", fetch: fetchDecX, store: storeX, flags: updatesZN}
	opDEY = &operation{mnemonic: "DEY", fetch: fetchDecY, store: storeY, flags: updatesZN}
	opASL = &operation{mnemonic: "ASL", fetch: fetchASL, store: storeMemory, flags: updatesZN}
	opLSR = &operation{mnemonic: "LSR", fetch: fetchLSR, store: storeMemory, flags: updatesZN}
	opROL = &operation{mnemonic: "ROL", fetch: fetchROL, store: storeMemory, flags: updatesZN}
	opROR = &operation{mnemonic: "ROR", fetch: fetchROR, store: storeMemory, flags: updatesZN}

	// Branches.
	opBCC = &operation{mnemonic: "BCC", effect: branchIf(func(p *status) bool { return !p.c })}
	opBCS = &operation{mnemonic: "BCS", effect: branchIf(func(p *status) bool { return p.c })}
	opBNE = &operation{mnemonic: "BNE", effect: branchIf(func(p *status) bool { return !p.z })}
	opBEQ = &operation{mnemonic: "BEQ", effect: branchIf(func(p *status) bool { return p.z })}
	opBPL = &operation{mnemonic: "BPL", effect: branchIf(func(p *status) bool { return !p.n })}
	opBMI = &operation{mnemonic: "BMI", effect: branchIf(func(p *status) bool { return p.n })}
	opBVC = &operation{mnemonic: "BVC", effect: branchIf(func(p *status) bool { return !p.v })}
	opBVS = &operation{mnemonic: "BVS", effect: branchIf(func(p *status) bool { return p.v })}

	// Jumps, stack and interrupts.
	opJMP = &operation{mnemonic: "JMP", effect: effectJMP}
	opJSR = &operation{mnemonic: "JSR", effect: effectJSR}
	opRTS = &operation{mnemonic: "RTS", effect: effectRTS}
	opRTI = &operation{mnemonic: "RTI", effect: effectRTI}
	opBRK = &operation{mnemonic: "BRK", effect: effectBRK}
	opPHA = &operation{mnemonic: "PHA", effect: effectPHA}
	opPHP = &operation{mnemonic: "PHP", effect: effectPHP}
	opPLA = &operation{mnemonic: "PLA", fetch: fetchPull, store: storeA, flags: updatesZN}
	opPLP = &operation{mnemonic: "PLP", effect: effectPLP}

	// Flags.
	opCLC = &operation{mnemonic: "CLC", effect: setFlag(func(p *status) { p.c = false })}
	opSEC = &operation{mnemonic: "SEC", effect: setFlag(func(p *status) { p.c = true })}
	opCLI = &operation{mnemonic: "CLI", effect: setFlag(func(p *status) { p.i = false })}
	opSEI = &operation{mnemonic: "SEI", effect: setFlag(func(p *status) { p.i = true })}
	opCLD = &operation{mnemonic: "CLD", effect: setFlag(func(p *status) { p.d = false })}
	opSED = &operation{mnemonic: "SED", effect: setFlag(func(p *status) { p.d = true })}
	opCLV = &operation{mnemonic: "CLV", effect: setFlag(func(p *status) { p.v = false })}

	opNOP = &operation{mnemonic: "NOP"}

	// Unofficial, each a documented operation fused with a read-modify-write.
	// Reference: https://www.nesdev.org/wiki/Programming_with_unofficial_opcodes
	opLAX = &operation{mnemonic: "LAX", fetch: fetchLoad, store: storeAX, flags: updatesZN}
	opSAX = &operation{mnemonic: "SAX", fetch: fetchAX, store: storeMemory}
	opDCP = &operation{mnemonic: "DCP", fetch: fetchDec, store: storeMemory, effect: effectCompareA}
	opISB = &operation{mnemonic: "ISB", fetch: fetchInc, store: storeMemory, effect: effectSubtractA}
	opSLO = &operation{mnemonic: "SLO", fetch: fetchASL, store: storeMemory, effect: effectOrA}
	opRLA = &operation{mnemonic: "RLA", fetch: fetchROL, store: storeMemory, effect: effectAndA}
	opSRE = &operation{mnemonic: "SRE", fetch: fetchLSR, store: storeMemory, effect: effectXorA}
	opRRA = &operation{mnemonic: "RRA", fetch: fetchROR, store: storeMemory, effect: effectAddA}
)
