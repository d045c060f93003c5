// Package sdnotify reports daemon lifecycle to systemd when running
// under a Type=notify unit. Outside systemd every call is a cheap no-op.
package sdnotify

import (
	"github.com/coreos/go-systemd/v22/daemon"
)

// Ready signals that startup is complete.
// Returns false when not running under systemd.
func Ready() bool {
	ok, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	return ok && err == nil
}

// Stopping signals that shutdown has begun.
func Stopping() bool {
	ok, err := daemon.SdNotify(false, daemon.SdNotifyStopping)
	return ok && err == nil
}
