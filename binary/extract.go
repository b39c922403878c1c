package binary

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArchiveKind is the compression format of a release archive.
type ArchiveKind int

const (
	TarGz ArchiveKind = iota + 1
	Zip
)

func (k ArchiveKind) Extension() string {
	switch k {
	case TarGz:
		return ".tar.gz"
	case Zip:
		return ".zip"
	default:
		return ""
	}
}

func (k ArchiveKind) String() string {
	return strings.TrimPrefix(k.Extension(), ".")
}

// UnsupportedArchiveTypeError is returned for urls that don't point to a
// .tar.gz or .zip archive.
type UnsupportedArchiveTypeError struct {
	URL string
}

func (e *UnsupportedArchiveTypeError) Error() string {
	return fmt.Sprintf("Unsupported archive type: %s", e.URL)
}

// ArchiveKindOf picks the archive format from the url suffix.
func ArchiveKindOf(url string) (ArchiveKind, error) {
	switch {
	case strings.HasSuffix(url, TarGz.Extension()):
		return TarGz, nil
	case strings.HasSuffix(url, Zip.Extension()):
		return Zip, nil
	default:
		return 0, &UnsupportedArchiveTypeError{URL: url}
	}
}

// Extract unpacks the archive downloaded from url into destination, picking
// the format from the url suffix. Progress is logged to w.
func Extract(w io.Writer, archive, url, destination string) error {
	kind, err := ArchiveKindOf(url)
	if err != nil {
		return err
	}
	return extract(w, archive, kind, destination)
}

// extract unpacks a compressed archive into destination.
// Entries that would land outside of destination are rejected.
func extract(w io.Writer, compressed string, kind ArchiveKind, destination string) (err error) {
	logdetail(w, fmt.Sprintf("extracting %s", filepath.Base(compressed)))
	defer elapsed(w, time.Now(), &err)

	file, err := os.Open(compressed)
	if err != nil {
		return fmt.Errorf("failed to open compressed file: %w", err)
	}
	defer file.Close()

	if err := os.MkdirAll(destination, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", destination, err)
	}

	switch kind {
	case TarGz:
		return untar(file, destination)
	case Zip:
		info, err := file.Stat()
		if err != nil {
			return fmt.Errorf("failed to stat compressed file: %w", err)
		}
		return unzip(file, info.Size(), destination)
	default:
		return fmt.Errorf("unsupported format: %s", kind)
	}
}

// handles .tar.gz files
func untar(file io.Reader, destination string) error {
	decompressor, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer decompressor.Close()

	reader := tar.NewReader(decompressor)

	for {
		header, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("failed to read tar header: %w", err)
		}

		target, err := within(destination, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			mode := header.FileInfo().Mode().Perm()
			if mode == 0 {
				mode = 0o644
			}
			if err := write(target, reader, mode); err != nil {
				return err
			}
		}
	}

	return nil
}

// handles .zip files
func unzip(file io.ReaderAt, size int64, destination string) error {
	reader, err := zip.NewReader(file, size)
	if err != nil {
		return fmt.Errorf("failed to create zip reader: %w", err)
	}

	for _, entry := range reader.File {
		target, err := within(destination, entry.Name)
		if err != nil {
			return err
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			continue
		}

		contents, err := entry.Open()
		if err != nil {
			return fmt.Errorf("failed to open file %s: %w", entry.Name, err)
		}

		mode := entry.Mode().Perm()
		if mode == 0 {
			mode = 0o644
		}

		err = write(target, contents, mode)
		contents.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

// within joins name to destination, failing when the result escapes destination.
func within(destination, name string) (string, error) {
	target := filepath.Join(destination, name)
	root := filepath.Clean(destination)

	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal file path in archive: %s", name)
	}
	return target, nil
}

func write(target string, data io.Reader, mode fs.FileMode) (err error) {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(target), err)
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file %s: %w", target, cerr)
		}
	}()

	if _, err := io.Copy(out, data); err != nil {
		return fmt.Errorf("failed to copy data to file %s: %w", target, err)
	}

	return nil
}
