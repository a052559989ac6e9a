//go:build darwin || linux

package interaction

import "golang.org/x/sys/unix"

func (kr *KeyboardReader) makeRaw(fd int) error {
	oldState, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	kr.oldState = oldState

	newState := *oldState
	newState.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN
	// ISIG stays enabled so Ctrl+C still raises SIGINT
	newState.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	newState.Cflag |= unix.CS8
	newState.Cc[unix.VMIN] = 1
	newState.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(fd, ioctlSetTermios, &newState)
}

func (kr *KeyboardReader) restore(fd int) error {
	if kr.oldState == nil {
		return nil
	}
	return unix.IoctlSetTermios(fd, ioctlSetTermios, kr.oldState)
}
