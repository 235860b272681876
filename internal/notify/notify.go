// Package notify runs the optional notification helper process spec.md
// §6/§11 describe: a separate binary (overridable via
// SPACESHOT_NOTIFY_PATH) invoked with the saved screenshot's path, whose
// exit code is logged but never fatal. Exit code 104 specifically means
// "exec of the real notifier failed", which gets its own warning text
// instead of the generic "exited with code N" (spec.md §11).
package notify

import (
	"os"
	"os/exec"

	"github.com/Mabi19/spaceshot/internal/log"
)

const execFailedExitCode = 104

const defaultHelperPath = "/usr/libexec/spaceshot-notify"

// Send launches the notification helper with path as its sole argument
// and does not wait synchronously on the caller's critical path beyond
// starting the process; the exit code is reported asynchronously once
// the process completes.
func Send(path string) {
	helper := os.Getenv("SPACESHOT_NOTIFY_PATH")
	if helper == "" {
		helper = defaultHelperPath
	}

	cmd := exec.Command(helper, path)
	if err := cmd.Start(); err != nil {
		log.Warning("failed to start notification helper %q: %v", helper, err)
		return
	}

	go func() {
		err := cmd.Wait()
		if err == nil {
			return
		}
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			log.Warning("notification helper %q: %v", helper, err)
			return
		}
		code := exitErr.ExitCode()
		if code == execFailedExitCode {
			log.Warning("notification helper %q failed to exec its target", helper)
			return
		}
		log.Warning("notification helper %q exited with code %d", helper, code)
	}()
}
