//go:build unix

package tui

import "syscall"

const canPark = true

// parkProcess stops the process the way a shell's ^Z would and returns
// once it is continued.
func parkProcess() {
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}
