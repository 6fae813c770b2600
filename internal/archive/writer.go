package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ulikunitz/xz"
)

// SnapshotName returns the file name for a translation snapshot taken at t,
// e.g. "dailybread-web-20240301.tar.xz".
func SnapshotName(translation string, t time.Time) string {
	return fmt.Sprintf("dailybread-%s-%s.tar.xz", translation, t.Format("20060102"))
}

// CreateTarXZ creates a tar.xz archive from a source directory.
// The baseDir parameter specifies the directory name inside the archive.
// If createParentDir is true, parent directories of dstPath are created.
func CreateTarXZ(srcDir, dstPath, baseDir string, createParentDir bool) error {
	if createParentDir {
		if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}
	}

	outFile, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer outFile.Close()

	xw, err := xz.NewWriter(outFile)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	defer xw.Close()

	tw := tar.NewWriter(xw)
	defer tw.Close()

	now := time.Now()

	err = filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		// Skip root directory
		if relPath == "." {
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}

		// Set the name with the base directory prefix
		header.Name = baseDir + "/" + filepath.ToSlash(relPath)
		if info.IsDir() {
			header.Name += "/"
		}

		// Normalize timestamps for reproducibility
		header.ModTime = now

		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		if !info.IsDir() {
			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			if _, err := io.Copy(tw, file); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	return nil
}
