package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Renan-Hawladar/OrbitAI/internal/apperror"
	"github.com/Renan-Hawladar/OrbitAI/internal/model"
	"github.com/Renan-Hawladar/OrbitAI/internal/pdftext"
	"github.com/Renan-Hawladar/OrbitAI/internal/repository"
)

// MaxUploadBytes caps the DECODED size of either upload (photo or CV).
// The editor enforces the same 5MB limit before transmitting, but the
// client check is a UX convenience — this one is the authority.
const MaxUploadBytes = 5 << 20

// ProfileUpdate carries a partial profile update. Pointer fields distinguish
// "leave unchanged" (nil) from "set to this value" (non-nil, possibly empty
// string to clear an upload).
type ProfileUpdate struct {
	Name           *string
	Degree         *string
	Qualifications *string
	Skills         *string
	PhotoBase64    *string
	CVPDFBase64    *string
}

// ProfileService owns the career profile: reads, validated writes, and the
// server-side CV text extraction.
type ProfileService struct {
	profiles repository.ProfileRepository
	logger   *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(profiles repository.ProfileRepository, logger *slog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, logger: logger}
}

// Get returns the user's profile, creating an empty one on first access so
// the editor always has something to populate from.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("service/profile: fetching profile for user %s: %w", userID, err)
	}

	empty := &model.Profile{UserID: userID}
	if err := s.profiles.Save(ctx, empty); err != nil {
		return nil, fmt.Errorf("service/profile: creating empty profile for user %s: %w", userID, err)
	}
	return empty, nil
}

// Update applies a partial update and saves the merged profile.
//
// Upload validation happens here regardless of what the client already
// checked: the decoded photo must be an image and the decoded CV must be a
// real PDF, both at most 5MB. A new CV always re-extracts CVText; clearing
// the CV clears the text with it. On any validation failure the stored
// profile is untouched.
func (s *ProfileService) Update(ctx context.Context, userID string, update ProfileUpdate) (*model.Profile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		profile.Name = *update.Name
	}
	if update.Degree != nil {
		profile.Degree = *update.Degree
	}
	if update.Qualifications != nil {
		profile.Qualifications = *update.Qualifications
	}
	if update.Skills != nil {
		profile.Skills = *update.Skills
	}

	if update.PhotoBase64 != nil {
		if *update.PhotoBase64 == "" {
			profile.PhotoBase64 = ""
		} else {
			if err := validatePhoto(*update.PhotoBase64); err != nil {
				return nil, err
			}
			profile.PhotoBase64 = *update.PhotoBase64
		}
	}

	if update.CVPDFBase64 != nil {
		if *update.CVPDFBase64 == "" {
			profile.CVPDFBase64 = ""
			profile.CVText = ""
		} else {
			text, err := validateAndExtractCV(*update.CVPDFBase64)
			if err != nil {
				return nil, err
			}
			profile.CVPDFBase64 = *update.CVPDFBase64
			profile.CVText = text
		}
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		s.logger.Error("failed to save profile",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/profile: saving profile for user %s: %w", userID, err)
	}

	s.logger.Info("profile updated",
		slog.String("userID", userID),
		slog.Bool("complete", profile.Complete()),
	)

	return profile, nil
}

func validatePhoto(encoded string) error {
	data, err := pdftext.DecodeBase64(encoded)
	if err != nil {
		return apperror.ValidationFailed("profile_picture_base64", "profile picture is not valid base64 data")
	}
	if len(data) > MaxUploadBytes {
		return apperror.ValidationFailed("profile_picture_base64", "profile picture must be less than 5MB")
	}
	if ct := http.DetectContentType(data); len(ct) < 6 || ct[:6] != "image/" {
		return apperror.ValidationFailed("profile_picture_base64", "profile picture must be an image")
	}
	return nil
}

func validateAndExtractCV(encoded string) (string, error) {
	data, err := pdftext.DecodeBase64(encoded)
	if err != nil {
		return "", apperror.ValidationFailed("cv_pdf_base64", "CV is not valid base64 data")
	}
	if len(data) > MaxUploadBytes {
		return "", apperror.ValidationFailed("cv_pdf_base64", "CV file must be less than 5MB")
	}
	if !pdftext.IsPDF(data) {
		return "", apperror.ValidationFailed("cv_pdf_base64", "CV must be a PDF file")
	}

	text, err := pdftext.FromBase64(encoded)
	if err != nil {
		return "", apperror.ValidationFailed("cv_pdf_base64", fmt.Sprintf("error parsing PDF: %v", err))
	}
	return text, nil
}
