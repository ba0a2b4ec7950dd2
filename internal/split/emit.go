package split

import (
	"fmt"
	"io"

	"github.com/google/renameio/v2"
)

// writeFileAtomic writes a file through a temp file and an atomic rename,
// so a failed split never leaves a truncated setup file behind.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	pf, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending file for %s: %w", path, err)
	}
	defer func() {
		_ = pf.Cleanup()
	}()

	if err := write(pf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
