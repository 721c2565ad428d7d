package render

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/codemateteam/php-handbook-sub005/internal/logging"
)

// CopyStatic copies src into dst. A missing src is not an error.
func CopyStatic(src, dst string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.NoOp()
	}
	if _, err := os.Stat(src); os.IsNotExist(err) {
		logger.Debug("static.skipped", "dir", src)
		return nil
	}
	if err := copyDirContents(src, dst, logger); err != nil {
		return fmt.Errorf("failed to copy static assets: %w", err)
	}
	logger.Info("static.copied", "from", src, "to", dst)
	return nil
}

func copyDirContents(src, dst string, logger logging.Logger) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}
		dstPath := filepath.Join(dst, relPath)

		if d.IsDir() {
			// umask trims os.ModePerm to the usual 0755
			if err := os.MkdirAll(dstPath, os.ModePerm); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dstPath, err)
			}
			return nil
		}
		if err := copyFile(path, dstPath, logger); err != nil {
			return fmt.Errorf("failed to copy file from %s to %s: %w", path, dstPath, err)
		}
		return nil
	})
}

func copyFile(srcFile, dstFile string, logger logging.Logger) error {
	srcF, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", srcFile, err)
	}
	defer srcF.Close()

	if err := os.MkdirAll(filepath.Dir(dstFile), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create destination directory %s: %w", filepath.Dir(dstFile), err)
	}

	dstF, err := os.Create(dstFile)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dstFile, err)
	}
	defer dstF.Close()

	if _, err := io.Copy(dstF, srcF); err != nil {
		return fmt.Errorf("failed to copy data from %s to %s: %w", srcFile, dstFile, err)
	}

	if info, err := srcF.Stat(); err == nil {
		if err := os.Chmod(dstFile, info.Mode()); err != nil {
			logger.Warn("static.chmod_failed", "file", dstFile, "error", err)
		}
	}
	return nil
}
