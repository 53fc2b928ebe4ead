package client

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

// pngBytes is a minimal PNG header, enough for content-type sniffing.
func pngBytes() []byte {
	return []byte("\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 16))
}

func pdfBytes() []byte {
	return []byte("%PDF-1.4\n1 0 obj\nendobj\n%%EOF")
}

func TestProfileForm_SetPhoto(t *testing.T) {
	t.Run("valid image is staged as a data URI", func(t *testing.T) {
		f := NewProfileForm()
		if err := f.SetPhoto("me.png", pngBytes()); err != nil {
			t.Fatalf("SetPhoto() error = %v", err)
		}

		encoded := f.payload()["profile_picture_base64"]
		if encoded == nil {
			t.Fatal("expected photo in payload")
		}
		if !strings.HasPrefix(*encoded, "data:image/png;base64,") {
			t.Errorf("encoded photo = %q, want data URI prefix", (*encoded)[:40])
		}
	})

	t.Run("oversized photo names the size in the error", func(t *testing.T) {
		f := NewProfileForm()
		big := append(pngBytes(), bytes.Repeat([]byte{0}, MaxFileBytes)...)

		err := f.SetPhoto("huge.png", big)

		var fieldErr *FieldError
		if !errors.As(err, &fieldErr) {
			t.Fatalf("error = %v, want FieldError", err)
		}
		if fieldErr.Field != "profile_picture" {
			t.Errorf("Field = %q", fieldErr.Field)
		}
		if !strings.Contains(fieldErr.Message, "5.0 MB") {
			t.Errorf("message %q should show the human-readable limit", fieldErr.Message)
		}
		if f.payload()["profile_picture_base64"] != nil {
			t.Error("rejected photo must not be staged")
		}
	})

	t.Run("non-image is rejected with the detected type", func(t *testing.T) {
		f := NewProfileForm()
		err := f.SetPhoto("cv.pdf", pdfBytes())

		var fieldErr *FieldError
		if !errors.As(err, &fieldErr) {
			t.Fatalf("error = %v, want FieldError", err)
		}
		if !strings.Contains(fieldErr.Message, "not an image") {
			t.Errorf("message = %q", fieldErr.Message)
		}
	})
}

func TestProfileForm_SetCV(t *testing.T) {
	t.Run("valid PDF is staged", func(t *testing.T) {
		f := NewProfileForm()
		if err := f.SetCV("cv.pdf", pdfBytes()); err != nil {
			t.Fatalf("SetCV() error = %v", err)
		}

		encoded := f.payload()["cv_pdf_base64"]
		if encoded == nil {
			t.Fatal("expected CV in payload")
		}
		want := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdfBytes())
		if *encoded != want {
			t.Error("encoded CV does not round-trip")
		}
	})

	t.Run("non-PDF is rejected even when small", func(t *testing.T) {
		f := NewProfileForm()
		err := f.SetCV("cv.docx", []byte("PK\x03\x04 word document"))

		var fieldErr *FieldError
		if !errors.As(err, &fieldErr) {
			t.Fatalf("error = %v, want FieldError", err)
		}
		if fieldErr.Field != "cv_pdf" {
			t.Errorf("Field = %q", fieldErr.Field)
		}
		if f.payload()["cv_pdf_base64"] != nil {
			t.Error("rejected CV must not be staged")
		}
	})

	t.Run("oversized PDF is rejected", func(t *testing.T) {
		f := NewProfileForm()
		big := append(pdfBytes(), bytes.Repeat([]byte{0}, MaxFileBytes)...)
		if err := f.SetCV("huge.pdf", big); err == nil {
			t.Fatal("expected error for oversized CV")
		}
	})
}

func TestProfileForm_Complete(t *testing.T) {
	filled := func() *ProfileForm {
		f := NewProfileForm()
		f.SetName("Alice")
		f.SetDegree("BSc")
		f.SetQualifications("AWS SAA")
		f.SetSkills("Go")
		return f
	}

	t.Run("all fields plus a staged CV", func(t *testing.T) {
		f := filled()
		if err := f.SetCV("cv.pdf", pdfBytes()); err != nil {
			t.Fatal(err)
		}
		if !f.Complete() {
			t.Error("expected complete")
		}
	})

	t.Run("stored CV counts without a re-upload", func(t *testing.T) {
		f := filled().WithStoredCV()
		if !f.Complete() {
			t.Error("expected complete with a CV already on file")
		}
	})

	t.Run("missing CV blocks submission", func(t *testing.T) {
		if filled().Complete() {
			t.Error("expected incomplete without a CV")
		}
	})

	t.Run("whitespace-only field blocks submission", func(t *testing.T) {
		f := filled().WithStoredCV()
		f.SetSkills("   ")
		if f.Complete() {
			t.Error("expected incomplete with blank skills")
		}
	})

	t.Run("clearing the CV makes the form incomplete", func(t *testing.T) {
		f := filled().WithStoredCV()
		f.ClearCV()
		if f.Complete() {
			t.Error("expected incomplete after ClearCV")
		}
	})
}

func TestProfileForm_PayloadOmitsUntouchedFields(t *testing.T) {
	f := NewProfileForm()
	f.SetName("Alice")

	p := f.payload()
	if len(p) != 1 {
		t.Errorf("payload has %d fields, want only the touched one", len(p))
	}
	if p["name"] == nil || *p["name"] != "Alice" {
		t.Error("expected name in payload")
	}
}

func TestFormatFileSize(t *testing.T) {
	mb := float64(1 << 20)
	tests := []struct {
		bytes int64
		want  string
	}{
		{27, "27 B"},
		{1024, "1.0 KB"},
		{640 * 1024, "640.0 KB"},
		{5 << 20, "5.0 MB"},
		{int64(3.2 * mb), "3.2 MB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.bytes); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
