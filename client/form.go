package client

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// MaxFileBytes caps profile uploads at 5MB of raw file content, mirroring
// the backend limit so users hear about oversized files before a network
// round trip.
const MaxFileBytes = 5 << 20

// FieldError is a validation failure local to one form field. It never
// escalates past the field it names.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// ProfileForm accumulates profile edits for submission. Text fields are
// tri-state via pointers: nil means "don't touch", a set value (including
// "") is written through. SetPhoto and SetCV validate before encoding, so
// a rejected file leaves the form exactly as it was.
type ProfileForm struct {
	name           *string
	degree         *string
	qualifications *string
	skills         *string
	photoBase64    *string
	cvBase64       *string

	// Retained from the last fetched profile so Complete() can account
	// for a CV already on file.
	hasStoredCV bool
}

// NewProfileForm creates an empty form that touches nothing on submit.
func NewProfileForm() *ProfileForm {
	return &ProfileForm{}
}

// WithStoredCV marks that the fetched profile already has an extracted CV,
// so Complete() does not demand a re-upload.
func (f *ProfileForm) WithStoredCV() *ProfileForm {
	f.hasStoredCV = true
	return f
}

func (f *ProfileForm) SetName(v string)           { f.name = &v }
func (f *ProfileForm) SetDegree(v string)         { f.degree = &v }
func (f *ProfileForm) SetQualifications(v string) { f.qualifications = &v }
func (f *ProfileForm) SetSkills(v string)         { f.skills = &v }

// SetPhoto validates and stages a profile photo: any image type, at most
// MaxFileBytes. On success the file is held as a base64 data URI; on
// failure the form keeps whatever photo it had.
func (f *ProfileForm) SetPhoto(filename string, data []byte) error {
	if len(data) > MaxFileBytes {
		return &FieldError{
			Field: "profile_picture",
			Message: fmt.Sprintf("%s is %s; photos must be at most %s",
				filename, FormatFileSize(int64(len(data))), FormatFileSize(MaxFileBytes)),
		}
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return &FieldError{
			Field:   "profile_picture",
			Message: fmt.Sprintf("%s is not an image (detected %s)", filename, contentType),
		}
	}

	encoded := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	f.photoBase64 = &encoded
	return nil
}

// SetCV validates and stages a CV: strictly PDF, at most MaxFileBytes.
func (f *ProfileForm) SetCV(filename string, data []byte) error {
	if len(data) > MaxFileBytes {
		return &FieldError{
			Field: "cv_pdf",
			Message: fmt.Sprintf("%s is %s; CVs must be at most %s",
				filename, FormatFileSize(int64(len(data))), FormatFileSize(MaxFileBytes)),
		}
	}

	if !strings.HasPrefix(string(data), "%PDF-") {
		return &FieldError{
			Field:   "cv_pdf",
			Message: fmt.Sprintf("%s is not a PDF file", filename),
		}
	}

	encoded := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(data)
	f.cvBase64 = &encoded
	f.hasStoredCV = true
	return nil
}

// ClearCV removes the CV on submit.
func (f *ProfileForm) ClearCV() {
	empty := ""
	f.cvBase64 = &empty
	f.hasStoredCV = false
}

// Complete reports whether a submit would leave the profile able to run
// analyses: every text field set non-blank and a CV either staged or
// already stored.
func (f *ProfileForm) Complete() bool {
	filled := func(v *string) bool { return v != nil && strings.TrimSpace(*v) != "" }
	return filled(f.name) &&
		filled(f.degree) &&
		filled(f.qualifications) &&
		filled(f.skills) &&
		f.hasStoredCV
}

// payload builds the PUT body: only set fields appear, so the backend
// leaves the rest untouched.
func (f *ProfileForm) payload() map[string]*string {
	p := make(map[string]*string)
	if f.name != nil {
		p["name"] = f.name
	}
	if f.degree != nil {
		p["degree"] = f.degree
	}
	if f.qualifications != nil {
		p["qualifications"] = f.qualifications
	}
	if f.skills != nil {
		p["skills"] = f.skills
	}
	if f.photoBase64 != nil {
		p["profile_picture_base64"] = f.photoBase64
	}
	if f.cvBase64 != nil {
		p["cv_pdf_base64"] = f.cvBase64
	}
	return p
}

// FormatFileSize renders a byte count the way a person reads one:
// "3.2 MB", "640 KB", "27 B".
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
