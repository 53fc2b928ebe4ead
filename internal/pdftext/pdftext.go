// Package pdftext extracts plain text from base64-encoded PDF documents.
//
// The profile editor ships the CV as a base64 string (optionally with a
// browser data-URI prefix). The extracted text — not the PDF itself — is
// what gets embedded into the career-advisor prompt, so extraction failures
// must surface at upload time, not at analysis time.
package pdftext

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfMagic is the header every real PDF starts with.
const pdfMagic = "%PDF-"

// FromBase64 decodes a base64 PDF and returns the concatenated text of all
// its pages.
//
// Errors when the input is not valid base64, not a PDF, or yields no text
// at all (typically a scanned, image-only PDF — there is nothing to feed
// the prompt in that case and the user should be told).
func FromBase64(encoded string) (string, error) {
	data, err := DecodeBase64(encoded)
	if err != nil {
		return "", err
	}
	return extract(data)
}

// DecodeBase64 strips an optional "data:...;base64," prefix and decodes.
// Exposed separately so the profile service can size-check the raw bytes
// without extracting text twice.
func DecodeBase64(encoded string) ([]byte, error) {
	if strings.HasPrefix(encoded, "data:") {
		if _, rest, found := strings.Cut(encoded, ","); found {
			encoded = rest
		}
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		// Some encoders omit padding.
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimSpace(encoded))
		if err != nil {
			return nil, fmt.Errorf("pdftext: invalid base64 data: %w", err)
		}
	}
	return data, nil
}

// IsPDF reports whether the decoded bytes look like a PDF document.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte(pdfMagic))
}

// extract pulls the plain text out of every page.
//
// The pdf library panics on some malformed documents instead of returning
// an error; the recover converts that into a normal parse error since the
// input is untrusted user upload.
func extract(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdftext: malformed PDF: %v", r)
		}
	}()

	if !IsPDF(data) {
		return "", fmt.Errorf("pdftext: data is not a PDF document")
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdftext: reading PDF: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}

	text = strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("pdftext: could not extract text from PDF (image-based document?)")
	}

	return text, nil
}
