package handshake

// RAMLoader is a Loader backed by a plain byte slice that stands in for
// physical memory starting at Base.  Writes outside of Mem are counted but
// dropped, so tests can see a kernel that went somewhere it shouldn't.
type RAMLoader struct {
	Base    uint32
	Mem     []byte
	Writes  int
	Strays  int
	Highest uint32
}

// NewRAMLoader makes a loader covering [base, base+size).
func NewRAMLoader(base uint32, size int) *RAMLoader {
	return &RAMLoader{Base: base, Mem: make([]byte, size)}
}

func (r *RAMLoader) Write(addr uint32, value uint8) {
	r.Writes++
	if addr > r.Highest {
		r.Highest = addr
	}
	if addr < r.Base || uint64(addr-r.Base) >= uint64(len(r.Mem)) {
		r.Strays++
		return
	}
	r.Mem[addr-r.Base] = value
}
