// Package raspbootcom is the host side of the raspbootin handshake.  It acts
// like a dumb terminal for the board until the bootloader asks for a kernel,
// then answers with one.
//
// The layers are: Sender <--- KernelSource
// Sender watches the serial stream for the request and speaks the protocol,
// KernelSource decides what bytes to send each time we are asked.
package raspbootcom

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"raspbootin/src/boot/handshake"
)

// ErrProtocol means the bootloader answered a size with something we don't
// understand.
var ErrProtocol = errors.New("unexpected reply from bootloader")

// ErrTooBig means the kernel can't even be described in 4 bytes.
var ErrTooBig = errors.New("kernel larger than 4GB")

// progressEvery is how often (in bytes) we report progress at -v=1
const progressEvery = 64 * 1024

// KernelSource is called once per request.  It is called again on every
// request so a kernel rebuilt while the board reboots is picked up.
type KernelSource func() ([]byte, error)

// FileSource reads the kernel from path each time it is asked.
func FileSource(path string) KernelSource {
	return func() ([]byte, error) {
		return os.ReadFile(path)
	}
}

// Stats counts what happened over the life of a Sender.
type Stats struct {
	Requests int
	Sent     int
	Rejected int
	Errors   int
}

// Sender speaks the protocol on link and copies everything else the board
// says to out.
type Sender struct {
	link   io.ReadWriter
	in     *bufio.Reader
	out    io.Writer
	kernel KernelSource

	mu     sync.Mutex // held while we own the write side of link
	breaks int
	stats  Stats
}

func NewSender(link io.ReadWriter, out io.Writer, kernel KernelSource) *Sender {
	return &Sender{
		link:   link,
		in:     bufio.NewReader(link),
		out:    out,
		kernel: kernel,
	}
}

// Write sends p to the board, for keyboard input.  It waits if a kernel is
// being sent so typing can't land in the middle of one.
func (s *Sender) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.link.Write(p)
}

// Stats returns a copy of the counters.
func (s *Sender) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Serve runs until the link is closed (returns nil) or fails.  ctx is checked
// between bytes, a read that is blocked can only be stopped by closing link.
func (s *Sender) Serve(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c, err := s.in.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			// a read cut short by Run closing the port is a normal quit
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("reading from board: %w", err)
		}
		if err := s.consume(c); err != nil {
			return err
		}
	}
}

// Run serves until the board hangs up, Serve fails or ctx is cancelled.
// port is closed on the way out in every case, it is the only way to get
// Serve out of a blocked read.
func (s *Sender) Run(ctx context.Context, port io.Closer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Serve returns nil on hang up, errgroup won't cancel for that
		defer cancel()
		return s.Serve(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		return port.Close()
	})
	return g.Wait()
}

func (s *Sender) consume(c byte) error {
	if c == handshake.RequestSeq[s.breaks] {
		s.breaks++
		if s.breaks < len(handshake.RequestSeq) {
			return nil
		}
		s.breaks = 0
		return s.answer()
	}
	// not a request after all, let the user see what we held back
	if s.breaks > 0 {
		if _, err := s.out.Write(handshake.RequestSeq[:s.breaks]); err != nil {
			return err
		}
		s.breaks = 0
		if c == handshake.RequestSeq[0] {
			s.breaks = 1
			return nil
		}
	}
	_, err := s.out.Write([]byte{c})
	return err
}

// answer handles one request.  Problems with the kernel or the reply are
// logged and we go back to being a terminal; only a dead link is returned.
func (s *Sender) answer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Requests++
	glog.Infof("bootloader requested a kernel (request #%d)", s.stats.Requests)

	kernel, err := s.kernel()
	if err != nil {
		s.stats.Errors++
		glog.Errorf("unable to load kernel: %v", err)
		return nil
	}
	if uint64(len(kernel)) > math.MaxUint32 {
		s.stats.Errors++
		glog.Errorf("%v: %d bytes", ErrTooBig, len(kernel))
		return nil
	}

	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(len(kernel)))
	if _, err := s.link.Write(size[:]); err != nil {
		return fmt.Errorf("sending size: %w", err)
	}

	var reply [2]byte
	if _, err := io.ReadFull(s.in, reply[:]); err != nil {
		return fmt.Errorf("reading reply: %w", err)
	}
	switch {
	case string(reply[:]) == string(handshake.AcceptCode):
	case string(reply[:]) == string(handshake.RejectCode):
		s.stats.Rejected++
		glog.Warningf("bootloader rejected a kernel of %d bytes, it would overwrite the loader", len(kernel))
		return nil
	default:
		s.stats.Errors++
		glog.Errorf("%v: %q", ErrProtocol, reply[:])
		return nil
	}

	if err := s.stream(kernel); err != nil {
		return fmt.Errorf("sending kernel: %w", err)
	}
	s.stats.Sent++
	glog.Infof("sent kernel of %d bytes", len(kernel))
	return nil
}

func (s *Sender) stream(kernel []byte) error {
	for off := 0; off < len(kernel); off += progressEvery {
		end := off + progressEvery
		if end > len(kernel) {
			end = len(kernel)
		}
		if _, err := s.link.Write(kernel[off:end]); err != nil {
			return err
		}
		glog.V(1).Infof("sent %d/%d bytes", end, len(kernel))
	}
	return nil
}
