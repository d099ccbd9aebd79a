package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

var (
	crashMu     sync.Mutex
	crashScreen tcell.Screen
	crashLog    = zap.NewNop()

	// Replaced in tests
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

// SetScreen registers the screen restored on crash, nil unregisters
func SetScreen(s tcell.Screen) {
	crashMu.Lock()
	crashScreen = s
	crashMu.Unlock()
}

// SetLogger registers the logger that records crashes
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	crashMu.Lock()
	crashLog = l
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	screen, log := crashScreen, crashLog
	crashScreen = nil
	crashMu.Unlock()

	// Terminal first, otherwise the trace lands in the alternate buffer
	if screen != nil {
		screen.Fini()
	}

	stack := debug.Stack()
	log.Error("crash", zap.Any("panic", r), zap.ByteString("stack", stack))
	_ = log.Sync()

	fmt.Fprintf(stderr, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(stderr, "Stack Trace:\n%s\n", stack)

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
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

// Guard wraps an errgroup task with the same recovery as Go
func Guard(fn func() error) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		return fn()
	}
}
