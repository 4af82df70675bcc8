package trust

import (
	"fmt"
	"io"
)

type MaskLevel int

const (
	Nothing   MaskLevel = 0x0
	ErrorMask MaskLevel = 0x1
	WarnMask  MaskLevel = 0x2
	InfoMask  MaskLevel = 0x4
	DebugMask MaskLevel = 0x8
)

const allMask = ErrorMask | WarnMask | InfoMask | DebugMask

// Logger prints leveled lines on a console.  On the board the console is the
// same uart the kernel comes in on, so everything here is for humans only.
type Logger struct {
	out   io.Writer
	level MaskLevel
}

// NewLogger returns a logger that prints everything to out.
func NewLogger(out io.Writer) *Logger {
	return &Logger{out: out, level: allMask}
}

// SetLevel lets you set the mask directly. Passing something like WarnMask
// turns on WarnMask and everything more severe than it.  It returns the
// previous mask.
func (l *Logger) SetLevel(mask MaskLevel) MaskLevel {
	result := Nothing
	switch {
	case mask&DebugMask > 0:
		result |= DebugMask
		fallthrough
	case mask&InfoMask > 0:
		result |= InfoMask
		fallthrough
	case mask&WarnMask > 0:
		result |= WarnMask
		fallthrough
	case mask&ErrorMask > 0:
		result |= ErrorMask
	}
	prev := l.level
	l.level = result
	return prev
}

func (l *Logger) Level() MaskLevel {
	return l.level
}

func (l *Logger) LevelToString() string {
	result := ""
	if l.level&ErrorMask > 0 {
		result += "error "
	}
	if l.level&WarnMask > 0 {
		result += "warn "
	}
	if l.level&InfoMask > 0 {
		result += "info "
	}
	if l.level&DebugMask > 0 {
		result += "debug "
	}
	if len(result) > 0 {
		result = result[:len(result)-1]
	}
	return result
}

func (l *Logger) logf(lvl MaskLevel, format string, params ...interface{}) {
	if l.level&lvl == 0 {
		return
	}
	switch {
	case lvl&ErrorMask > 0:
		fmt.Fprint(l.out, "ERROR:")
	case lvl&WarnMask > 0:
		fmt.Fprint(l.out, " WARN:")
	case lvl&InfoMask > 0:
		fmt.Fprint(l.out, " INFO:")
	case lvl&DebugMask > 0:
		fmt.Fprint(l.out, "DEBUG:")
	}
	if len(format) == 0 {
		format = "\n"
	} else if format[len(format)-1] != '\n' {
		format += "\n"
	}
	fmt.Fprintf(l.out, format, params...)
}

//Printf prints the message as is, no prefix, no newline added and no mask.
func (l *Logger) Printf(format string, params ...interface{}) {
	fmt.Fprintf(l.out, format, params...)
}

// Writer is the console underneath, for things like tag dumps that print
// themselves.
func (l *Logger) Writer() io.Writer {
	return l.out
}

//Errorf prints the given log message (format + params) using the ErrorMask level.
func (l *Logger) Errorf(format string, params ...interface{}) {
	l.logf(ErrorMask, format, params...)
}

//Warnf prints the given log message (format + params) using the WarnMask level.
func (l *Logger) Warnf(format string, params ...interface{}) {
	l.logf(WarnMask, format, params...)
}

//Infof prints the given log message (format + params) using the InfoMask level.
func (l *Logger) Infof(format string, params ...interface{}) {
	l.logf(InfoMask, format, params...)
}

//Debugf prints the given log message (format + params) using the DebugMask level.
func (l *Logger) Debugf(format string, params ...interface{}) {
	l.logf(DebugMask, format, params...)
}
