package media

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// fileStore implements Store on the local file system. Files are served
// back under baseURL by the router.
type fileStore struct {
	root    string
	baseURL string
	logger  zerolog.Logger
}

// NewFileStore creates a store writing below root.
func NewFileStore(root, baseURL string, logger zerolog.Logger) Store {
	return &fileStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With().Str("component", "media-file-store").Logger(),
	}
}

func (s *fileStore) Save(ctx context.Context, obj Object) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target, err := s.resolve(obj.Key())
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		s.logger.Error().Err(err).Str("path", target).Msg("failed to create media directory")
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	if err := os.WriteFile(target, obj.Data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("path", target).Msg("failed to write media file")
		return "", fmt.Errorf("failed to write media file %s: %w", obj.Key(), err)
	}

	s.logger.Info().
		Str("key", obj.Key()).
		Int("bytes", len(obj.Data)).
		Msg("media file stored")

	return s.baseURL + "/" + obj.Key(), nil
}

// resolve joins key onto root and refuses anything that escapes it.
func (s *fileStore) resolve(key string) (string, error) {
	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve media root: %w", err)
	}

	target := filepath.Join(root, filepath.FromSlash(key))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid media key %q", key)
	}
	return target, nil
}

// PublicFS exposes the objects below root for http.FileServer. Directories
// are reported as missing so stored objects cannot be listed.
func PublicFS(root string) http.FileSystem {
	return filesOnly{fs: http.Dir(root)}
}

type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
