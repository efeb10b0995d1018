package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"focusguard/internal/modules/notify/domain"
	notifyout "focusguard/internal/modules/notify/port/out"
)

const manifestFile = "notifiers.json"

type FileManifestStore struct {
	dir  string
	path string
}

// NewFileManifestStore reads dir/notifiers.json. Relative binary paths are
// resolved against dir.
func NewFileManifestStore(dir string) notifyout.ManifestStore {
	return &FileManifestStore{dir: dir, path: filepath.Join(dir, manifestFile)}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read notifier manifests: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode notifier manifests: %w", err)
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.dir, manifests[i].Binary))
		}
	}
	return manifests, nil
}
