package rowstats

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// maxLineSize bounds a single input line. Longer lines fail the read.
const maxLineSize = 16 << 20

// Chunk is a contiguous run of input lines handed to one worker.
type Chunk struct {
	Lines []string
	Index int   // position in file order, starting at 0
	Bytes int64 // input bytes consumed by these lines, separators included
}

// ChunkFile streams the file at path into out, chunkSize lines at a time.
// Every chunk except possibly the last holds exactly chunkSize lines. out is
// closed on every return path.
func ChunkFile(ctx context.Context, path string, chunkSize int, out chan<- Chunk) error {
	defer close(out)

	if chunkSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChunkSize, chunkSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpenInput, err)
	}
	defer file.Close()

	var consumed int64
	scanner := newLineScanner(file, &consumed)

	var (
		lines = make([]string, 0, chunkSize)
		index int
		start int64
	)
	flush := func() error {
		c := Chunk{Lines: lines, Index: index, Bytes: consumed - start}
		if err := send(ctx, out, c); err != nil {
			return err
		}
		index++
		start = consumed
		lines = make([]string, 0, chunkSize)
		return nil
	}

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) >= chunkSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}

	if len(lines) > 0 {
		return flush()
	}
	return nil
}

func send(ctx context.Context, out chan<- Chunk, c Chunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case out <- c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// newLineScanner splits r into lines the same way CountLines counts them and
// adds every byte the scanner advances past to *consumed.
func newLineScanner(r io.Reader, consumed *int64) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		advance, token, err := bufio.ScanLines(data, atEOF)
		*consumed += int64(advance)
		return advance, token, err
	})
	return scanner
}

// CountLines counts the lines of the file at path without parsing them. A
// final line without a trailing newline still counts.
func CountLines(ctx context.Context, path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOpenInput, err)
	}
	defer file.Close()

	var (
		buf   = make([]byte, 64*1024)
		lines int64
		last  byte = '\n'
	)
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		n, err := file.Read(buf)
		if n > 0 {
			lines += int64(bytes.Count(buf[:n], []byte{'\n'}))
			last = buf[n-1]
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
		}
	}

	if last != '\n' {
		lines++
	}
	return lines, nil
}

// ChunkCount is the number of chunks ChunkFile produces for a file of lines lines.
func ChunkCount(lines int64, chunkSize int) int64 {
	if lines <= 0 || chunkSize <= 0 {
		return 0
	}
	size := int64(chunkSize)
	return (lines + size - 1) / size
}
