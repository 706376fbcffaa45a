// pkg/source/archive.go
package source

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ExtractArchive unpacks a zip archive into destDir. Entries that would
// escape the destination directory are rejected.
func ExtractArchive(archivePath, destDir string, logger *zap.Logger) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", destDir, err)
	}

	extracted := 0
	for _, file := range reader.File {
		if err := extractEntry(file, destDir); err != nil {
			return err
		}
		if !file.FileInfo().IsDir() {
			extracted++
		}
	}

	logger.Info("Extracted dataset archive",
		zap.String("archive", archivePath),
		zap.String("dest", destDir),
		zap.Int("files", extracted))

	return nil
}

func extractEntry(file *zip.File, destDir string) error {
	path := filepath.Join(destDir, file.Name)

	// Guard against zip-slip entries
	if !strings.HasPrefix(path, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("archive entry %q escapes destination directory", file.Name)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(path, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", file.Name, err)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry %s: %w", file.Name, err)
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to extract %s: %w", file.Name, err)
	}

	return nil
}
