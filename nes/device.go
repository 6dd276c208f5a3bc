package nes

// Device is a memory-mapped region of the CPU address space. A device owns the
// inclusive range returned by Bounds and folds mirrored addresses itself, so the bus
// only has to find the owner.
type Device interface {
	Bounds() (start, end uint16)
	Read(address uint16) (byte, error)
	ReadBytes(address uint16, n int) ([]byte, error)
	Write(address uint16, data byte) error
}

// inBounds reports whether the device owns the address.
func inBounds(d Device, address uint16) bool {
	start, end := d.Bounds()
	return start <= address && address <= end
}

// readBytes reads n consecutive addresses one at a time. Devices with side effects on
// read use it so every byte goes through their register logic.
func readBytes(d Device, address uint16, n int) ([]byte, error) {
	buf := make([]byte, n)
	for i := range buf {
		data, err := d.Read(address + uint16(i))
		if err != nil {
			return nil, err
		}
		buf[i] = data
	}
	return buf, nil
}
