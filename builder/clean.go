package builder

import (
	"errors"
	"fmt"
	"os"

	"github.com/daedaleanai/cbuild/log"
)

// Clean removes dir and everything below it. A missing dir is not an error
// and reports removed == false. Only directories are removed: any other kind
// of file at dir is left in place and ErrNotDirectory is returned.
func Clean(dir string) (removed bool, err error) {
	stat, err := os.Lstat(dir)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("Directory '%s' does not exist. Nothing to do.\n", dir)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrFilesystem, err)
	}
	if !stat.IsDir() {
		return false, fmt.Errorf("%w: '%s'", ErrNotDirectory, dir)
	}

	log.Debug("Removing directory '%s'.\n", dir)
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("%w: %s", ErrFilesystem, err)
	}
	return true, nil
}
