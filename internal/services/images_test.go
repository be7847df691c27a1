package services

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

func fixedStore(ts time.Time) *ImageStore {
	return &ImageStore{now: func() time.Time { return ts }}
}

func encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestImageStore_Save(t *testing.T) {
	ts := time.Date(2024, 5, 1, 13, 4, 5, 0, time.Local)

	t.Run("writes_one_file_per_image", func(t *testing.T) {
		dir := t.TempDir()
		paths, err := fixedStore(ts).Save(dir, []string{encode("first"), encode("second"), encode("third")})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if len(paths) != 3 {
			t.Fatalf("expected 3 paths, got %d", len(paths))
		}

		want := []string{"20240501130405_0.png", "20240501130405_1.png", "20240501130405_2.png"}
		got := listDir(t, dir)
		if len(got) != len(want) {
			t.Fatalf("got %v want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got %v want %v", got, want)
			}
			if paths[i] != filepath.Join(dir, want[i]) {
				t.Fatalf("path %d: got %q", i, paths[i])
			}
		}

		data, err := os.ReadFile(filepath.Join(dir, want[1]))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(data) != "second" {
			t.Fatalf("content: got %q", data)
		}
	})

	t.Run("empty_batch", func(t *testing.T) {
		dir := t.TempDir()
		paths, err := fixedStore(ts).Save(dir, nil)
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if len(paths) != 0 {
			t.Fatalf("expected no paths, got %v", paths)
		}
		if got := listDir(t, dir); len(got) != 0 {
			t.Fatalf("expected empty dir, got %v", got)
		}
	})

	t.Run("creates_missing_parents", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b", "c")
		if _, err := fixedStore(ts).Save(dir, []string{encode("x")}); err != nil {
			t.Fatalf("save: %v", err)
		}
		if got := listDir(t, dir); len(got) != 1 || got[0] != "20240501130405_0.png" {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("existing_dir_keeps_unrelated_files", func(t *testing.T) {
		dir := t.TempDir()
		other := filepath.Join(dir, "notes.txt")
		if err := os.WriteFile(other, []byte("keep me"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}

		if _, err := fixedStore(ts).Save(dir, []string{encode("x")}); err != nil {
			t.Fatalf("save: %v", err)
		}

		data, err := os.ReadFile(other)
		if err != nil || string(data) != "keep me" {
			t.Fatalf("unrelated file changed: %q %v", data, err)
		}
		if got := listDir(t, dir); len(got) != 2 {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("empty_dir_is_working_dir", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)

		paths, err := fixedStore(ts).Save("", []string{encode("here")})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if len(paths) != 1 || paths[0] != "20240501130405_0.png" {
			t.Fatalf("paths: %v", paths)
		}
		data, err := os.ReadFile(filepath.Join(dir, "20240501130405_0.png"))
		if err != nil || string(data) != "here" {
			t.Fatalf("content: %q %v", data, err)
		}
	})

	t.Run("same_second_overwrites", func(t *testing.T) {
		dir := t.TempDir()
		s := fixedStore(ts)
		if _, err := s.Save(dir, []string{encode("old")}); err != nil {
			t.Fatalf("save: %v", err)
		}
		if _, err := s.Save(dir, []string{encode("new")}); err != nil {
			t.Fatalf("save: %v", err)
		}
		data, _ := os.ReadFile(filepath.Join(dir, "20240501130405_0.png"))
		if string(data) != "new" {
			t.Fatalf("expected overwrite, got %q", data)
		}
	})
}

func TestImageStore_SaveErrors(t *testing.T) {
	ts := time.Date(2024, 5, 1, 13, 4, 5, 0, time.Local)

	t.Run("bad_base64_stops_batch", func(t *testing.T) {
		dir := t.TempDir()
		paths, err := fixedStore(ts).Save(dir, []string{encode("ok"), "%%%not-base64%%%", encode("never")})

		var pe *PersistError
		if !errors.As(err, &pe) {
			t.Fatalf("expected PersistError, got %v", err)
		}
		if pe.Op != "decode" {
			t.Fatalf("op: got %q", pe.Op)
		}
		if len(paths) != 1 {
			t.Fatalf("expected 1 written path, got %v", paths)
		}
		if got := listDir(t, dir); len(got) != 1 || got[0] != "20240501130405_0.png" {
			t.Fatalf("expected only the first image on disk, got %v", got)
		}
	})

	t.Run("mkdir_fails", func(t *testing.T) {
		parent := t.TempDir()
		blocker := filepath.Join(parent, "file")
		if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}

		_, err := fixedStore(ts).Save(filepath.Join(blocker, "out"), []string{encode("x")})
		var pe *PersistError
		if !errors.As(err, &pe) || pe.Op != "mkdir" {
			t.Fatalf("expected mkdir PersistError, got %v", err)
		}
	})

	t.Run("write_fails", func(t *testing.T) {
		dir := t.TempDir()
		// A directory in place of the target file makes the write fail.
		if err := os.Mkdir(filepath.Join(dir, "20240501130405_1.png"), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}

		paths, err := fixedStore(ts).Save(dir, []string{encode("a"), encode("b"), encode("c")})
		var pe *PersistError
		if !errors.As(err, &pe) || pe.Op != "write" {
			t.Fatalf("expected write PersistError, got %v", err)
		}
		if len(paths) != 1 {
			t.Fatalf("expected 1 written path, got %v", paths)
		}
		if _, err := os.Stat(filepath.Join(dir, "20240501130405_2.png")); !os.IsNotExist(err) {
			t.Fatalf("expected third image to be skipped, stat err: %v", err)
		}
	})
}
