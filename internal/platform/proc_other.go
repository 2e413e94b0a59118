//go:build !windows

package platform

import "os/exec"

// HideChildWindow is a no-op outside Windows; child processes inherit no
// console there.
func HideChildWindow(_ *exec.Cmd) {}
