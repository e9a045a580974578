// Package fsutil provides filesystem replacements that readers never observe
// half done.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/branchsite/pkg/utils/safe"
)

// WriteFile writes data to a temporary file in the same directory and renames
// it over path.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return goerr.Wrap(err, "failed to create directory", goerr.V("dir", dir))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file", goerr.V("dir", dir))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		safe.Close(tmp)
		safe.Remove(tmpName)
		return goerr.Wrap(err, "failed to write temporary file", goerr.V("path", tmpName))
	}
	if err := tmp.Sync(); err != nil {
		safe.Close(tmp)
		safe.Remove(tmpName)
		return goerr.Wrap(err, "failed to sync temporary file", goerr.V("path", tmpName))
	}
	if err := tmp.Close(); err != nil {
		safe.Remove(tmpName)
		return goerr.Wrap(err, "failed to close temporary file", goerr.V("path", tmpName))
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		safe.Remove(tmpName)
		return goerr.Wrap(err, "failed to chmod temporary file", goerr.V("path", tmpName))
	}

	if err := os.Rename(tmpName, path); err != nil {
		safe.Remove(tmpName)
		return goerr.Wrap(err, "failed to replace file", goerr.V("path", path))
	}
	return nil
}

// SwapSymlink points link at target. A new symlink is created next to link
// and renamed over it, so link always resolves to either the old or the new
// target.
func SwapSymlink(target, link string) error {
	tmp := link + ".swap"
	safe.Remove(tmp)

	if err := os.Symlink(target, tmp); err != nil {
		return goerr.Wrap(err, "failed to create symlink", goerr.V("target", target), goerr.V("link", tmp))
	}
	if err := os.Rename(tmp, link); err != nil {
		safe.Remove(tmp)
		return goerr.Wrap(err, "failed to swap symlink", goerr.V("target", target), goerr.V("link", link))
	}
	return nil
}
