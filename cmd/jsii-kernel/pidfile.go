package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// checkPidFile rejects startup if path names a pid file whose process is
// still alive, the way the teacher's libutils.CheckPidFile does before that
// package's private dependency was dropped (DESIGN.md).
func checkPidFile(name, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading pid file %s: %w", path, err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		// Stale/corrupt pid file content; treat as not running.
		return nil
	}

	if err := unix.Kill(pid, 0); err == nil {
		return fmt.Errorf("%s already running with pid %d (%s)", name, pid, path)
	}

	return nil
}

// createPidFile writes the current process id to path, creating parent
// directories as needed.
func createPidFile(path string) error {
	if dir := parentDir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating pid file directory %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644)
}

// destroyPidFile removes path, ignoring a not-exist error.
func destroyPidFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func parentDir(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i <= 0 {
		return ""
	}
	return path[:i]
}
