package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	mimePDF = "application/pdf"

	// MaxFileBytes is the largest accepted upload.
	MaxFileBytes = 10 << 20

	// MinTextChars is the minimum amount of extracted text for a resume to be
	// analyzable. Anything shorter is almost always a scanned image.
	MinTextChars = 50
)

// Validate checks the declared media type and size. It must pass before any
// byte of the payload is read.
func Validate(mimeType string, sizeBytes int64) error {
	if normalizeMimeType(mimeType) != mimePDF {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, mimeType)
	}
	if sizeBytes > MaxFileBytes {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, sizeBytes)
	}
	return nil
}

// FromReader validates the declared type and size, reads the payload and
// extracts its text.
func FromReader(ctx context.Context, r io.Reader, mimeType string, sizeBytes int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := Validate(mimeType, sizeBytes); err != nil {
		return "", err
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxFileBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadFailure, err)
	}
	if int64(len(data)) > MaxFileBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, int64(len(data)))
	}
	return FromBytes(ctx, data)
}

// FromBytes extracts plain text from an in-memory PDF. Pages are processed in
// ascending page order; pages with no text contribute nothing to the output.
func FromBytes(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	pages, err := extractPages(data)
	if err != nil {
		return "", err
	}
	text := joinPages(pages)
	if chars := utf8.RuneCountInString(text); chars < MinTextChars {
		return "", fmt.Errorf("%w: got %d characters, need %d", ErrInsufficientText, chars, MinTextChars)
	}
	return text, nil
}

func extractPages(data []byte) (pages []string, err error) {
	// The pdf library panics on some malformed content streams.
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("%w: %v", ErrParseFailure, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	total := reader.NumPage()
	pages = make([]string, 0, total)
	for num := 1; num <= total; num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrParseFailure, num, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// joinPages concatenates trimmed per-page text with a blank line between
// pages, skipping pages that yielded nothing.
func joinPages(pages []string) string {
	var parts []string
	for _, page := range pages {
		if trimmed := strings.TrimSpace(page); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

func normalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}
