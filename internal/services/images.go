package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sdloop/utils"
)

// PersistError reports which step of saving a batch failed.
type PersistError struct {
	Op   string // mkdir, decode or write
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// ImageStore writes base64 images returned by txt2img to a directory.
type ImageStore struct {
	now func() time.Time
}

func NewImageStore() *ImageStore {
	return &ImageStore{now: time.Now}
}

// Save decodes images in order and writes them as <stamp>_<i>.png under dir,
// creating dir when needed. An empty dir means the working directory. The
// first failure stops the batch; files already written stay on disk and their
// paths are returned alongside the error.
func (s *ImageStore) Save(dir string, images []string) ([]string, error) {

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &PersistError{Op: "mkdir", Path: dir, Err: err}
	}

	stamp := utils.FileStamp(s.now())

	written := make([]string, 0, len(images))
	for i, image := range images {
		data, err := base64.StdEncoding.DecodeString(image)
		if err != nil {
			return written, &PersistError{Op: "decode", Path: fmt.Sprintf("image %d", i), Err: err}
		}

		path := filepath.Join(dir, utils.ImageFileName(stamp, i))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, &PersistError{Op: "write", Path: path, Err: err}
		}
		written = append(written, path)
	}

	return written, nil
}
