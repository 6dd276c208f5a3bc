package nes

// Status flag bit positions, LSB first.
//
//	7  bit  0
//	---- ----
//	NVss DIZC
const (
	flagCarry byte = 1 << iota
	flagZero
	flagInterrupt
	flagDecimal
	flagBreak1
	flagBreak2
	flagOverflow
	flagNegative
)

// flagPolicy declares which of the zero / negative flags an instruction derives from
// its result value.
type flagPolicy byte

const (
	updatesNone flagPolicy = 0
	updatesZ    flagPolicy = 1 << 0
	updatesN    flagPolicy = 1 << 1
	updatesZN              = updatesZ | updatesN
)

type status struct {
	c  bool // carry
	z  bool // zero
	i  bool // IRQ disable
	d  bool // decimal - unused on NES
	b1 bool // break, only meaningful in pushed copies
	b2 bool // always 1 in pushed copies
	v  bool // overflow
	n  bool // negative
}

// encode encodes the status to a byte.
func (s *status) encode() byte {
	var res byte
	if s.c {
		res |= flagCarry
	}
	if s.z {
		res |= flagZero
	}
	if s.i {
		res |= flagInterrupt
	}
	if s.d {
		res |= flagDecimal
	}
	if s.b1 {
		res |= flagBreak1
	}
	if s.b2 {
		res |= flagBreak2
	}
	if s.v {
		res |= flagOverflow
	}
	if s.n {
		res |= flagNegative
	}
	return res
}

// decodeFrom decodes a byte to the status.
func (s *status) decodeFrom(data byte) {
	s.c = data&flagCarry != 0
	s.z = data&flagZero != 0
	s.i = data&flagInterrupt != 0
	s.d = data&flagDecimal != 0
	s.b1 = data&flagBreak1 != 0
	s.b2 = data&flagBreak2 != 0
	s.v = data&flagOverflow != 0
	s.n = data&flagNegative != 0
}

// update sets zero and negative from the result, each only if the policy asks for it.
func (s *status) update(policy flagPolicy, result byte) {
	if policy&updatesZ != 0 {
		s.z = result == 0
	}
	if policy&updatesN != 0 {
		s.n = result&0x80 != 0
	}
}
