package util

import (
	"os/exec"
	"runtime"
)

// openCommand command that hands target to the OS default handler
func openCommand(goos, target string) *exec.Cmd {
	switch goos {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	case "darwin":
		return exec.Command("open", target)
	default:
		return exec.Command("xdg-open", target)
	}
}

// Open opens a URL or file with the default application.
func Open(target string) error {
	return openCommand(runtime.GOOS, target).Start()
}

// OpenWithFallback tries Open, then platform-specific alternatives.
func OpenWithFallback(target string) error {
	err := Open(target)
	if err == nil {
		return nil
	}

	switch runtime.GOOS {
	case "windows":
		return exec.Command("explorer", target).Start()
	case "linux":
		for _, bin := range []string{"gio", "sensible-browser", "libreoffice"} {
			if _, lookErr := exec.LookPath(bin); lookErr != nil {
				continue
			}
			args := []string{target}
			if bin == "gio" {
				args = []string{"open", target}
			}
			if exec.Command(bin, args...).Start() == nil {
				return nil
			}
		}
	}
	return err
}
