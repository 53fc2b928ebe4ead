package model

import "time"

// Profile holds the user-supplied facts and documents that feed career
// recommendations. One profile per user; a save overwrites the stored
// fields wholesale rather than diffing.
//
// The binary uploads (photo, CV) travel and persist as base64 strings,
// optionally carrying a browser-style data-URI prefix
// ("data:application/pdf;base64,..."). CVText is derived server-side from
// CVPDFBase64 on every CV upload — clients never write it directly.
//
// JSON field names are the API wire format and must stay snake_case; the
// frontend and the stored analyses both depend on them.
type Profile struct {
	ID             string    `json:"-"                      db:"id"`
	UserID         string    `json:"-"                      db:"user_id"`
	Name           string    `json:"name"                   db:"name"`
	Degree         string    `json:"degree"                 db:"degree"`
	Qualifications string    `json:"qualifications"         db:"qualifications"`
	Skills         string    `json:"skills"                 db:"skills"`
	PhotoBase64    string    `json:"profile_picture_base64" db:"photo_base64"`
	CVPDFBase64    string    `json:"cv_pdf_base64"          db:"cv_pdf_base64"`
	CVText         string    `json:"cv_text"                db:"cv_text"`
	CreatedAt      time.Time `json:"-"                      db:"created_at"`
	UpdatedAt      time.Time `json:"-"                      db:"updated_at"`
}

// Complete reports whether the profile carries everything the career
// advisor needs. Every recommendation operation is gated on this: name,
// degree, qualifications, skills, and extracted CV text must all be
// non-empty. The photo is optional — it is display-only.
func (p *Profile) Complete() bool {
	return p.Name != "" &&
		p.Degree != "" &&
		p.Qualifications != "" &&
		p.Skills != "" &&
		p.CVText != ""
}
