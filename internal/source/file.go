package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/wkarto/buzzline-04-karto/pkg/reduce"
)

const defaultIdleBackoff = 500 * time.Millisecond

// FileSource tails an append-only JSONL file, yielding each
// newline-terminated record once it is fully written. Reading starts at
// the current end of file, matching a consumer that only cares about
// records produced after it started.
type FileSource struct {
	file    *os.File
	backoff time.Duration
	partial bytes.Buffer
	buf     []byte
}

// NewFileSource opens path and seeks to its end. A missing file is a
// startup failure, not a condition to wait out.
func NewFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: cannot open data file: %w", err)
	}
	if _, err := f.Seek(0, io.SeekEnd); err != nil {
		f.Close()
		return nil, fmt.Errorf("source: cannot seek data file: %w", err)
	}

	zap.S().Infow("tailing data file", "path", path)
	return &FileSource{
		file:    f,
		backoff: defaultIdleBackoff,
		buf:     make([]byte, 64*1024),
	}, nil
}

// Next returns the next complete line, polling with a fixed idle backoff
// while no new data is available.
func (s *FileSource) Next(ctx context.Context) ([]byte, error) {
	for {
		if line, ok := s.takeLine(); ok {
			return line, nil
		}

		n, err := s.file.Read(s.buf)
		if n > 0 {
			s.partial.Write(s.buf[:n])
			continue
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w: %v", reduce.ErrSourceUnavailable, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.backoff):
		}
	}
}

// takeLine extracts one newline-terminated record from the partial
// buffer. Blank lines are skipped, trailing partial writes stay buffered.
func (s *FileSource) takeLine() ([]byte, bool) {
	for {
		data := s.partial.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			return nil, false
		}

		line := make([]byte, i)
		copy(line, data[:i])
		s.partial.Next(i + 1)

		if len(bytes.TrimSpace(line)) > 0 {
			return line, true
		}
	}
}

func (s *FileSource) Close() error {
	return s.file.Close()
}
