package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Finalizer restores the terminal, satisfied by tcell.Screen
type Finalizer interface {
	Fini()
}

var (
	crashScreen atomic.Pointer[Finalizer]
	crashLogger atomic.Pointer[zerolog.Logger]
	exitFunc    = os.Exit
)

// SetCrashScreen registers the screen restored before a crash report is printed
// Passing nil clears the registration
func SetCrashScreen(f Finalizer) {
	if f == nil {
		crashScreen.Store(nil)
		return
	}
	crashScreen.Store(&f)
}

// SetCrashLogger registers a logger that receives the panic and stack
func SetCrashLogger(l zerolog.Logger) {
	crashLogger.Store(&l)
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	stack := debug.Stack()

	if f := crashScreen.Swap(nil); f != nil {
		(*f).Fini()
	}

	if l := crashLogger.Load(); l != nil {
		l.Error().Interface("panic", r).Bytes("stack", stack).Msg("crash")
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", stack)
	os.Stderr.Sync()

	exitFunc(1)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
