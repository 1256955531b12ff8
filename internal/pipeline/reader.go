package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// ErrTooLarge is returned for inputs over the configured size limit
var ErrTooLarge = errors.New("input exceeds size limit")

// StdinPath names standard input
const StdinPath = "-"

// Reader reads metadata documents from files or stdin
type Reader struct {
	maxBytes int64
	stdin    io.Reader
}

// NewReader creates a new Reader with the given size limit
func NewReader(maxBytes int64) *Reader {
	return &Reader{
		maxBytes: maxBytes,
		stdin:    os.Stdin,
	}
}

// Input is a document read into memory
type Input struct {
	Path        string
	Data        []byte
	ContentType string // Sniffed media type
	BaseURI     string // file:// URL of the document, empty for stdin
	Digest      string // sha256 of Data
}

// Read loads path, or stdin for "-"
func (r *Reader) Read(ctx context.Context, path string) (*Input, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var src io.Reader
	base := ""
	if path == StdinPath {
		src = r.stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open: %w", err)
		}
		defer f.Close()
		src = f

		base, err = fileURI(path)
		if err != nil {
			return nil, err
		}
	}

	// Read one byte past the limit to detect oversized input
	data, err := io.ReadAll(io.LimitReader(src, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("%s: %w (%d bytes)", path, ErrTooLarge, r.maxBytes)
	}

	return NewInput(path, data, base), nil
}

// NewInput wraps data already in memory
func NewInput(path string, data []byte, baseURI string) *Input {
	sum := sha256.Sum256(data)
	return &Input{
		Path:        path,
		Data:        data,
		ContentType: http.DetectContentType(data),
		BaseURI:     baseURI,
		Digest:      hex.EncodeToString(sum[:]),
	}
}

func fileURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
