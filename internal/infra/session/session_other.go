//go:build !unix

package session

import "os"

// No session or process group concept here; the parent pid is the closest.
func sessionID() (int, error) {
	return os.Getppid(), nil
}

func processGroup() (int, error) {
	return os.Getppid(), nil
}
