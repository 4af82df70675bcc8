package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang/glog"
	tty "github.com/mattn/go-tty"
	"github.com/pkg/term"

	"raspbootin/src/tools/raspbootcom"
)

var (
	devFlag     = flag.String("dev", "/dev/ttyUSB0", "serial device the board is on")
	baudFlag    = flag.Int("baud", 115200, "serial line speed")
	kernelFlag  = flag.String("kernel", "kernel.img", "kernel image to send when asked, re-read on every request")
	openTimeout = flag.Duration("open_timeout", 30*time.Second, "how long to keep trying to open the serial device")
	noKeyboard  = flag.Bool("no_keyboard", false, "don't forward keystrokes to the board")
)

// ctrl-] like telnet
const quitKey = 0x1d

func main() {
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() > 0 {
		usage()
	}

	port, err := openSerial(*devFlag, *baudFlag, *openTimeout)
	if err != nil {
		glog.Exitf("unable to open %s: %v", *devFlag, err)
	}
	glog.Infof("connected to %s at %d baud, sending %s when asked", *devFlag, *baudFlag, *kernelFlag)

	sender := raspbootcom.NewSender(port, os.Stdout, raspbootcom.FileSource(*kernelFlag))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if !*noKeyboard {
		restore, err := forwardKeyboard(sender, cancel)
		if err != nil {
			glog.Exitf("unable to read keyboard: %v", err)
		}
		defer restore()
	}

	err = sender.Run(ctx, port)
	stats := sender.Stats()
	glog.Infof("done: %d requests, %d kernels sent, %d rejected, %d errors",
		stats.Requests, stats.Sent, stats.Rejected, stats.Errors)
	if err != nil && !errors.Is(err, context.Canceled) {
		glog.Errorf("%v", err)
	}
}

// openSerial keeps trying until the device shows up, usb serial adapters
// come and go when the board is power cycled.
func openSerial(dev string, baud int, timeout time.Duration) (*term.Term, error) {
	var port *term.Term
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = timeout
	err := backoff.RetryNotify(func() error {
		t, err := term.Open(dev, term.Speed(baud), term.RawMode)
		if err != nil {
			return err
		}
		port = t
		return nil
	}, b, func(err error, d time.Duration) {
		glog.Warningf("%s not ready (%v), retrying in %v", dev, err, d)
	})
	return port, err
}

// forwardKeyboard copies what the user types to the board until they hit
// the quit key.  The returned func puts the terminal back.
func forwardKeyboard(sender *raspbootcom.Sender, quit func()) (func(), error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}
	restore := t.MustRaw()
	go func() {
		buf := make([]byte, utf8.UTFMax)
		for {
			r, err := t.ReadRune()
			if err != nil {
				glog.Warningf("keyboard: %v", err)
				quit()
				return
			}
			if r == quitKey {
				glog.Infof("quit key pressed")
				quit()
				return
			}
			n := utf8.EncodeRune(buf, r)
			if _, err := sender.Write(buf[:n]); err != nil {
				glog.Warningf("sending keystroke: %v", err)
			}
		}
	}()
	return func() {
		restore()
		t.Close()
	}, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: raspbootcom [flags]\n")
	flag.PrintDefaults()
	os.Exit(1)
}
