// Package archive extracts single files from OS archives, such as the
// update-binary shipped inside an OS zip.
package archive

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mholt/archives"

	pkgerrors "github.com/glorpus-work/mobdef/pkg/errors"
	"github.com/glorpus-work/mobdef/pkg/fsutil"
)

// UpdateBinaryPath is the location of the update-binary inside an OS zip.
const UpdateBinaryPath = "META-INF/com/google/android/update-binary"

// ExtractFile extracts a specific file from an archive to the destination
// path. The extracted file is marked executable, matching how the
// update-binary is consumed by recovery tooling.
func ExtractFile(ctx context.Context, archivePath, filePath, destPath string) error {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open archive %s", archivePath)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	srcFile, err := fsys.Open(filePath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open %s in archive", filePath)
	}
	defer func() { _ = srcFile.Close() }()

	if err := fsutil.EnsureFileDir(destPath); err != nil {
		return pkgerrors.Wrap(err, "failed to create destination directory")
	}

	dstFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeExec)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to create destination file %s", destPath)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return pkgerrors.Wrap(err, "failed to extract file")
	}
	return nil
}

// ContainsFile reports whether the archive holds the given file path.
func ContainsFile(ctx context.Context, archivePath, filePath string) (bool, error) {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return false, pkgerrors.Wrapf(err, "failed to open archive %s", archivePath)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	if _, err := fs.Stat(fsys, filepath.ToSlash(filePath)); err != nil {
		return false, nil
	}
	return true, nil
}
