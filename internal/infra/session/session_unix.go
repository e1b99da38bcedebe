//go:build unix

package session

import "golang.org/x/sys/unix"

func sessionID() (int, error) {
	return unix.Getsid(0)
}

func processGroup() (int, error) {
	return unix.Getpgrp(), nil
}
