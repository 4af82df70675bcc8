// Package handshake receives a kernel over the serial line.
//
// The conversation, from our side:
//
//	-> banner and diagnostics (humans only)
//	-> 0x03 0x03 0x03          please send a kernel
//	<- size, 4 bytes, little endian
//	-> "SE" and start over     if LoadAddr+size would run into the loader
//	-> "OK"                    otherwise
//	<- size bytes of kernel
//	-> "booting..."
//
// There is no checksum and no partial retry.  Anything that goes wrong is
// handled by the sender trying again from the top.
package handshake

import (
	"encoding/binary"
	"fmt"
	"io"

	"raspbootin/src/boot/archinfo"
	"raspbootin/src/boot/atag"
	"raspbootin/src/boot/bootloader"
	"raspbootin/src/lib/trust"
)

// these must match the sender byte for byte
var (
	RequestSeq = []byte{0x03, 0x03, 0x03}
	AcceptCode = []byte("OK")
	RejectCode = []byte("SE")
)

const BootingNotice = "booting..."

const hello = "\r\nRaspbootin V1.1\r\n"
const rule = "######################################################################\n"

// blinkEvery is how many received bytes between activity LED toggles
const blinkEvery = 1024

// State is where we are in a single attempt.
type State int

const (
	Announce State = iota
	AwaitLength
	Reject
	Receive
	Dispatch
)

func (s State) String() string {
	switch s {
	case Announce:
		return "Announce"
	case AwaitLength:
		return "AwaitLength"
	case Reject:
		return "Reject"
	case Receive:
		return "Receive"
	case Dispatch:
		return "Dispatch"
	}
	return "unknown"
}

// Link is the serial line.  On the board neither call ever fails, they just
// block until the uart is ready.
type Link interface {
	io.ByteReader
	io.ByteWriter
}

// Loader puts received bytes into memory.
type Loader interface {
	Write(addr uint32, value uint8)
}

// Blinker is the activity LED.
type Blinker interface {
	Toggle()
}

// Config is the memory layout the handshake protects.
type Config struct {
	LoadAddr uint32 // first byte of the kernel goes here
	Ceiling  uint32 // the kernel must end at or before here
}

// DefaultConfig is the real layout: load at 0x8000 and stay below ourselves.
func DefaultConfig() Config {
	return Config{LoadAddr: bootloader.LoadAddr, Ceiling: bootloader.LoaderAddr}
}

// Fits reports whether a kernel of size bytes can be loaded.  The sum is done
// in 64 bits so a huge size can't wrap around and look small.
func (c Config) Fits(size uint32) bool {
	return uint64(c.LoadAddr)+uint64(size) <= uint64(c.Ceiling)
}

// Session is the bookkeeping for one attempt.  A new one is made every time
// we get a size we like.
type Session struct {
	Expected uint32
	Written  uint32
	Cursor   uint32
}

// Image is a fully received kernel.
type Image struct {
	Addr uint32
	Size uint32
}

// LinkError is returned when the serial line itself fails, which only
// happens off the board.
type LinkError struct {
	State State
	Err   error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("serial link failed in state %s: %v", e.State, e.Err)
}

func (e *LinkError) Unwrap() error {
	return e.Err
}

// Handshake runs the receive side of the protocol.
type Handshake struct {
	cfg      Config
	link     Link
	mem      Loader
	log      *trust.Logger
	profile  archinfo.Profile
	regs     bootloader.Registers
	tags     *atag.List
	led      Blinker
	state    State
	attempts int
}

// New wires up a handshake.  tags may be nil if the firmware gave us none.
func New(cfg Config, link Link, mem Loader, log *trust.Logger, profile archinfo.Profile,
	regs bootloader.Registers, tags *atag.List) *Handshake {
	return &Handshake{
		cfg:     cfg,
		link:    link,
		mem:     mem,
		log:     log,
		profile: profile,
		regs:    regs,
		tags:    tags,
	}
}

// SetBlinker turns on the activity LED while bytes are arriving.
func (h *Handshake) SetBlinker(b Blinker) {
	h.led = b
}

// State is the state of the current (or last) attempt.
func (h *Handshake) State() State {
	return h.state
}

// Attempts is how many times we have asked for a kernel.
func (h *Handshake) Attempts() int {
	return h.attempts
}

// Run asks for a kernel until one arrives.  On the board it only returns
// with a loaded image.
func (h *Handshake) Run() (Image, error) {
	for {
		img, ok, err := h.attempt()
		if err != nil {
			return Image{}, err
		}
		if ok {
			return img, nil
		}
	}
}

func (h *Handshake) attempt() (Image, bool, error) {
	h.attempts++
	h.state = Announce
	h.announce()
	if err := h.send(RequestSeq); err != nil {
		return Image{}, false, err
	}

	h.state = AwaitLength
	size, err := h.readLength()
	if err != nil {
		return Image{}, false, err
	}

	if !h.cfg.Fits(size) {
		h.state = Reject
		if err := h.send(RejectCode); err != nil {
			return Image{}, false, err
		}
		// only after the reply, the sender reads it straight after the size
		h.log.Debugf("rejected kernel of %#x bytes, would end at %#x past %#x",
			size, uint64(h.cfg.LoadAddr)+uint64(size), h.cfg.Ceiling)
		return Image{}, false, nil
	}
	if err := h.send(AcceptCode); err != nil {
		return Image{}, false, err
	}

	h.state = Receive
	sess := Session{Expected: size, Cursor: h.cfg.LoadAddr}
	if err := h.receive(&sess); err != nil {
		return Image{}, false, err
	}

	h.state = Dispatch
	if err := h.send([]byte(BootingNotice)); err != nil {
		return Image{}, false, err
	}
	return Image{Addr: h.cfg.LoadAddr, Size: sess.Written}, true, nil
}

func (h *Handshake) announce() {
	h.log.Printf("%s", hello)
	h.log.Printf(rule)
	h.log.Printf("%s\n", h.regs)
	if h.tags != nil {
		h.tags.PrintAll(h.log.Writer())
	}
	h.log.Printf("Detected '%s'\n", h.profile.Model)
	h.log.Printf(rule)
}

func (h *Handshake) readLength() (uint32, error) {
	var raw [4]byte
	for i := range raw {
		b, err := h.link.ReadByte()
		if err != nil {
			return 0, &LinkError{State: h.state, Err: err}
		}
		raw[i] = b
	}
	return binary.LittleEndian.Uint32(raw[:]), nil
}

func (h *Handshake) receive(sess *Session) error {
	for sess.Written < sess.Expected {
		b, err := h.link.ReadByte()
		if err != nil {
			return &LinkError{State: h.state, Err: err}
		}
		h.mem.Write(sess.Cursor, b)
		sess.Cursor++
		sess.Written++
		if h.led != nil && sess.Written%blinkEvery == 0 {
			h.led.Toggle()
		}
	}
	return nil
}

func (h *Handshake) send(data []byte) error {
	for _, b := range data {
		if err := h.link.WriteByte(b); err != nil {
			return &LinkError{State: h.state, Err: err}
		}
	}
	return nil
}
