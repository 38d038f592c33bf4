package emitter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/viant/afs"
)

// Target names a delivery destination
type Target string

const (
	TargetClipboard Target = "clipboard"
	TargetStdout    Target = "stdout"
	TargetFile      Target = "file"
)

// Sink delivers emitted text
type Sink interface {
	// Deliver hands text to the destination
	Deliver(ctx context.Context, text []byte) error

	// Confirmation returns the message reported after a successful delivery
	Confirmation() string
}

// NewSink creates a sink for target; location is required for TargetFile
func NewSink(target Target, location string, stdout io.Writer) (Sink, error) {
	switch target {
	case "", TargetClipboard:
		return &Clipboard{}, nil
	case TargetStdout:
		if stdout == nil {
			stdout = os.Stdout
		}
		return &Writer{writer: stdout}, nil
	case TargetFile:
		if location == "" {
			return nil, fmt.Errorf("output path was empty")
		}
		return NewFile(location), nil
	}
	return nil, fmt.Errorf("unsupported output target: %s", target)
}

// Clipboard copies text to the system clipboard
type Clipboard struct{}

func (c *Clipboard) Deliver(ctx context.Context, text []byte) error {
	if err := clipboard.WriteAll(string(text)); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

func (c *Clipboard) Confirmation() string {
	return "result copied to clipboard"
}

// Writer writes text to a stream such as stdout
type Writer struct {
	writer io.Writer
}

func (w *Writer) Deliver(ctx context.Context, text []byte) error {
	_, err := w.writer.Write(text)
	return err
}

func (w *Writer) Confirmation() string {
	return "result written to stdout"
}

// File uploads text to a file or afs supported URL
type File struct {
	fs  afs.Service
	URL string
}

// NewFile creates a file sink
func NewFile(URL string) *File {
	return &File{fs: afs.New(), URL: URL}
}

func (f *File) Deliver(ctx context.Context, text []byte) error {
	if err := f.fs.Upload(ctx, f.URL, 0644, bytes.NewReader(text)); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.URL, err)
	}
	return nil
}

func (f *File) Confirmation() string {
	return "result written to " + f.URL
}
