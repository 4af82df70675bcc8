// +build raspi

package runtime

// Board support lives outside the toolchain, in raspbootin/src/tinygo_runtime.
// Each external_ function below is provided by that package under the same
// symbol name.

const tickMicros = int64(1)

type timeUnit int64

var asyncScheduler = false

//export runtime.external_putchar
func external_putchar(c byte)

//export runtime.external_abort
func external_abort()

//export runtime.external_postinit
func external_postinit()

//export runtime.external_ticks
func external_ticks() uint64

//export runtime.external_sleep_ticks
func external_sleep_ticks(d uint64)

// Run starts the Go side of the program.  The caller has already cleared bss
// and set up the stack.
func Run() {
	initHeap()
	initAll()
	postinit()
	callMain()
}

func putchar(c byte) {
	external_putchar(c)
}

// abort is called by panic().
func abort() {
	external_abort()
}

func postinit() {
	external_postinit()
}

func sleepTicks(n timeUnit) {
	external_sleep_ticks(uint64(n))
}

func ticks() timeUnit {
	return timeUnit(external_ticks())
}

func ticksToNanoseconds(t timeUnit) int64 {
	return int64(t) * 1000
}

func nanosecondsToTicks(t int64) timeUnit {
	return timeUnit(t / 1000)
}
