package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"resume-critiquer/internal/extract/extracttest"
)

const samplePageOne = "Experienced software engineer with ten years of Go and distributed systems work."
const samplePageTwo = "Led a platform team of six and shipped a multi-region storage service to production."

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		size     int64
		wantErr  error
	}{
		{name: "pdf ok", mimeType: "application/pdf", size: 1024},
		{name: "pdf with charset ok", mimeType: "application/pdf; charset=binary", size: 1024},
		{name: "uppercase ok", mimeType: "APPLICATION/PDF", size: 1024},
		{name: "at limit ok", mimeType: "application/pdf", size: MaxFileBytes},
		{name: "docx rejected", mimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", size: 1024, wantErr: ErrUnsupportedFileType},
		{name: "plain text rejected", mimeType: "text/plain", size: 1024, wantErr: ErrUnsupportedFileType},
		{name: "over limit", mimeType: "application/pdf", size: MaxFileBytes + 1, wantErr: ErrFileTooLarge},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mimeType, tt.size)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

type recordingReader struct {
	reads int
	err   error
}

func (r *recordingReader) Read(p []byte) (int, error) {
	r.reads++
	if r.err != nil {
		return 0, r.err
	}
	return 0, errors.New("no data")
}

func TestFromReaderRejectsBeforeReading(t *testing.T) {
	r := &recordingReader{}
	_, err := FromReader(context.Background(), r, "image/png", 1024)
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
	if r.reads != 0 {
		t.Fatalf("expected no reads for rejected type, got %d", r.reads)
	}

	r = &recordingReader{}
	_, err = FromReader(context.Background(), r, "application/pdf", MaxFileBytes+1)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if r.reads != 0 {
		t.Fatalf("expected no reads for oversized file, got %d", r.reads)
	}
}

func TestFromReaderReadFailure(t *testing.T) {
	r := &recordingReader{err: errors.New("disk gone")}
	_, err := FromReader(context.Background(), r, "application/pdf", 1024)
	if !errors.Is(err, ErrReadFailure) {
		t.Fatalf("expected ErrReadFailure, got %v", err)
	}
}

func TestFromBytesGarbageIsParseFailure(t *testing.T) {
	_, err := FromBytes(context.Background(), []byte("this is not a pdf at all"))
	if !errors.Is(err, ErrParseFailure) {
		t.Fatalf("expected ErrParseFailure, got %v", err)
	}
}

func TestFromBytesSinglePage(t *testing.T) {
	data := extracttest.BuildPDF([]string{samplePageOne})
	text, err := FromBytes(context.Background(), data)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if text != samplePageOne {
		t.Fatalf("extracted text = %q, want %q", text, samplePageOne)
	}
}

func TestFromBytesSkipsEmptyPages(t *testing.T) {
	data := extracttest.BuildPDF([]string{samplePageOne, "", samplePageTwo})
	text, err := FromBytes(context.Background(), data)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	want := samplePageOne + "\n\n" + samplePageTwo
	if text != want {
		t.Fatalf("extracted text = %q, want %q", text, want)
	}
}

func TestFromBytesInsufficientText(t *testing.T) {
	data := extracttest.BuildPDF([]string{"too short"})
	text, err := FromBytes(context.Background(), data)
	if !errors.Is(err, ErrInsufficientText) {
		t.Fatalf("expected ErrInsufficientText, got %v", err)
	}
	if text != "" {
		t.Fatalf("expected no partial text, got %q", text)
	}
}

func TestFromBytesMinimumCountsCharacters(t *testing.T) {
	// 0xE9 is é in WinAnsi and decodes to a two-byte rune, so 30 of them
	// exceed the minimum in bytes but not in characters.
	accented := strings.Repeat("\xe9", 30)
	data := extracttest.BuildPDF([]string{accented})
	_, err := FromBytes(context.Background(), data)
	if !errors.Is(err, ErrInsufficientText) {
		t.Fatalf("expected ErrInsufficientText for %d accented characters, got %v", 30, err)
	}

	data = extracttest.BuildPDF([]string{strings.Repeat("\xe9", MinTextChars)})
	text, err := FromBytes(context.Background(), data)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if got := len([]rune(text)); got != MinTextChars {
		t.Fatalf("extracted %d characters, want %d", got, MinTextChars)
	}
}

func TestFromBytesAllPagesEmpty(t *testing.T) {
	data := extracttest.BuildPDF([]string{"", ""})
	_, err := FromBytes(context.Background(), data)
	if !errors.Is(err, ErrInsufficientText) {
		t.Fatalf("expected ErrInsufficientText, got %v", err)
	}
}

func TestJoinPages(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{name: "skips empty middle page", pages: []string{"Hello", "", "World"}, want: "Hello\n\nWorld"},
		{name: "trims page whitespace", pages: []string{"  Hello \n", "\t", " World "}, want: "Hello\n\nWorld"},
		{name: "all empty", pages: []string{"", "  ", "\n"}, want: ""},
		{name: "single page", pages: []string{"Hello"}, want: "Hello"},
		{name: "no pages", pages: nil, want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := joinPages(tt.pages); got != tt.want {
				t.Fatalf("joinPages = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromBytesPreservesPageOrder(t *testing.T) {
	pages := []string{
		"Page one of the resume covering a professional summary section in detail.",
		"Page two of the resume covering work experience and selected projects.",
		"Page three of the resume covering education, skills and certifications.",
	}
	data := extracttest.BuildPDF(pages)
	text, err := FromBytes(context.Background(), data)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if text != strings.Join(pages, "\n\n") {
		t.Fatalf("pages out of order:\n%q", text)
	}
}
