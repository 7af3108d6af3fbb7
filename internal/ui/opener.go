package ui

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// Opener hands a URL (https:, mailto:) to the host environment
type Opener interface {
	Open(target string) error
}

// SystemOpener launches the platform's default handler. When no handler can
// be started the target is copied to the clipboard instead.
type SystemOpener struct{}

// Open implements Opener
func (SystemOpener) Open(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}

	startErr := cmd.Start()
	if startErr == nil {
		// Reap the launcher; its exit status is of no interest.
		go cmd.Wait()
		return nil
	}

	if err := clipboard.WriteAll(target); err != nil {
		return fmt.Errorf("opening %s: %v; copying to clipboard: %w", target, startErr, err)
	}
	return ErrCopiedToClipboard
}

// ErrCopiedToClipboard reports that the target was copied rather than opened
var ErrCopiedToClipboard = errors.New("copied to clipboard")
