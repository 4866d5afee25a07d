package dailylog

import (
	"fmt"
	"os"
	"path/filepath"
)

// updateSymlink points link at target. The new link is created next to the
// old one and renamed over it, so readers never see a missing link.
func updateSymlink(link, target string) error {
	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", target, err)
	}

	tmp := link + ".tmp"
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale link %s: %w", tmp, err)
	}
	if err := os.Symlink(abs, tmp); err != nil {
		return fmt.Errorf("failed to create link %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, link); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace link %s: %w", link, err)
	}

	return nil
}
