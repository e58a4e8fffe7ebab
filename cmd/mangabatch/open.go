package main

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openImage hands path to the platform's default image viewer.
func openImage(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/C", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to launch image viewer for %s: %w", path, err)
	}
	return nil
}
