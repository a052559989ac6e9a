// Package interaction reads keystrokes from a terminal in raw mode.
package interaction

import (
	"os"

	"golang.org/x/sys/unix"
)

// KeyboardReader handles keyboard input in raw mode
type KeyboardReader struct {
	oldState *unix.Termios
	input    chan KeyEvent
	stop     chan struct{}
}

// KeyEvent represents a keyboard event
type KeyEvent struct {
	Key  rune
	Type KeyType
}

// KeyType represents the type of key pressed
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
	KeyCtrlC
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

const (
	byteCtrlC  = 3
	byteEscape = 27
)

// NewKeyboardReader switches stdin to raw mode and starts reading
func NewKeyboardReader() (*KeyboardReader, error) {
	kr := newKeyboardReader()

	if err := kr.enableRawMode(); err != nil {
		return nil, err
	}

	go kr.readInput()

	return kr, nil
}

func newKeyboardReader() *KeyboardReader {
	return &KeyboardReader{
		input: make(chan KeyEvent, 10),
		stop:  make(chan struct{}),
	}
}

// readInput reads keyboard input in a goroutine
func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 16)

	for {
		select {
		case <-kr.stop:
			return
		default:
		}

		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			continue
		}

		for _, event := range parseInput(buf[:n]) {
			select {
			case kr.input <- event:
			case <-kr.stop:
				return
			}
		}
	}
}

// parseInput splits one read into key events. Bursts of several keys
// (paste, key repeat) yield several events.
func parseInput(buf []byte) []KeyEvent {
	var events []KeyEvent

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		switch {
		case b == byteCtrlC:
			events = append(events, KeyEvent{Key: byteCtrlC, Type: KeyCtrlC})

		case b == byteEscape:
			if i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
				if t, ok := arrowKey(buf[i+2]); ok {
					events = append(events, KeyEvent{Key: rune(buf[i+2]), Type: t})
					i += 2
					continue
				}
			}
			// Unknown sequences are dropped whole
			if i+1 < len(buf) && buf[i+1] == '[' {
				return events
			}
			events = append(events, KeyEvent{Key: byteEscape, Type: KeyEscape})

		default:
			events = append(events, KeyEvent{Key: rune(b), Type: KeyChar})
		}
	}

	return events
}

func arrowKey(b byte) (KeyType, bool) {
	switch b {
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	}
	return KeyChar, false
}

// Events returns the keyboard event channel
func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

// Close stops the keyboard reader and restores terminal
func (kr *KeyboardReader) Close() error {
	close(kr.stop)
	return kr.disableRawMode()
}
