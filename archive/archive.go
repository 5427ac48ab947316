// Package archive stores the artifacts of a finished run: the simulator
// configuration, provenance, telemetry and report.
package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Sink receives named artifacts.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
}

// Dir is a Sink writing into a local directory.
type Dir string

func (d Dir) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(string(d), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(string(d), name), data, 0644)
}

// CopyFile stores the file at src in sink under name.
func CopyFile(ctx context.Context, sink Sink, src, name string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("archive %s: %w", src, err)
	}
	if err := sink.Put(ctx, name, data); err != nil {
		return fmt.Errorf("archive %s as %s: %w", src, name, err)
	}
	return nil
}

// Tree stores every regular file directly inside dir, named by its base
// name, in lexical order. It returns the names stored.
func Tree(ctx context.Context, sink Sink, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := CopyFile(ctx, sink, filepath.Join(dir, e.Name()), e.Name()); err != nil {
			return names, err
		}
		names = append(names, e.Name())
	}
	return names, nil
}
