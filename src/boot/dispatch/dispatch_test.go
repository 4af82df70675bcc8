package dispatch

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"raspbootin/src/boot/bootloader"
	"raspbootin/src/boot/handshake"
	"raspbootin/src/lib/trust"
)

type recorder struct {
	events []string
	entry  uint32
	regs   bootloader.Registers
	spun   int
}

func (r *recorder) Jump(entry uint32, regs bootloader.Registers) {
	r.events = append(r.events, "jump")
	r.entry = entry
	r.regs = regs
}

func (r *recorder) Spin(n int) {
	r.events = append(r.events, "spin")
	r.spun += n
}

func TestBootPassesRegistersThrough(t *testing.T) {
	var console bytes.Buffer
	rec := &recorder{}
	regs := bootloader.Registers{R0: 0, R1: 0xc42, ATAGs: 0x100}
	Boot(rec, rec, trust.NewLogger(&console), handshake.Image{Addr: 0x8000, Size: 16}, regs)
	if rec.entry != 0x8000 {
		t.Errorf("expected jump to 0x8000, went to %#x", rec.entry)
	}
	if diff := cmp.Diff(regs, rec.regs); diff != "" {
		t.Errorf("registers were modified (-want +got):\n%s", diff)
	}
}

func TestReturningKernelHalts(t *testing.T) {
	var console bytes.Buffer
	rec := &recorder{}
	Boot(rec, rec, trust.NewLogger(&console), handshake.Image{Addr: 0x8000}, bootloader.Registers{})
	if diff := cmp.Diff([]string{"jump", "spin"}, rec.events); diff != "" {
		t.Errorf("wrong order (-want +got):\n%s", diff)
	}
	if rec.spun != bootloader.HaltSpin {
		t.Errorf("expected %d spins, got %d", bootloader.HaltSpin, rec.spun)
	}
	if console.String() != HaltMessage {
		t.Errorf("expected halt message, got %q", console.String())
	}
}
