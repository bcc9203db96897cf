/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: file_source.go
Description: Source implementation for local files and standard input.
*/

package sample

import (
	"context"
	"fmt"
	"io"
	"os"
)

// StdinPath is the location that selects standard input
const StdinPath = "-"

// FileSource reads a sample from a local file or stdin
type FileSource struct {
	Path    string
	Stdin   io.Reader
	MaxSize int64 // DefaultMaxSize when zero
}

// NewFileSource creates a new FileSource
func NewFileSource(path string) *FileSource {
	return &FileSource{
		Path:    path,
		Stdin:   stdin,
		MaxSize: DefaultMaxSize,
	}
}

func (fs *FileSource) Name() string {
	if fs.Path == StdinPath {
		return "stdin"
	}
	return fs.Path
}

func (fs *FileSource) Description() string {
	if fs.Path == StdinPath {
		return "sample read from standard input"
	}
	return fmt.Sprintf("sample file %s", fs.Path)
}

// Fetch reads the whole file
func (fs *FileSource) Fetch(ctx context.Context) (*Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var reader io.Reader
	if fs.Path == StdinPath {
		reader = fs.Stdin
	} else {
		file, err := os.Open(fs.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sample file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	data, err := readAll(reader, fs.MaxSize)
	if err != nil {
		return nil, err
	}

	name := fs.Path
	if fs.Path == StdinPath {
		name = ""
	}
	return &Payload{
		Data:   data,
		Format: DetectFormat(name, "", data),
		Origin: fs.Name(),
	}, nil
}
