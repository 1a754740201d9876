// Package browser launches the user's default web browser, used to hand off
// checkout pages.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open points the default browser at url without waiting for it to exit.
func Open(url string) error {
	var name string
	args := []string{url}
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "linux":
		name = "xdg-open"
	case "windows":
		name = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	default:
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return exec.Command(name, args...).Start()
}
