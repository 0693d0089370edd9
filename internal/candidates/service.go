package candidates

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"careers-gateway/internal/smartrecruiters"
)

const maxResumeBytes = 10 << 20 // 10 MiB

var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// Validation failures, checked in this order before any network call.
var (
	ErrMissingFields   = errors.New("missing required fields: name, email and file are required")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidFileType = errors.New("invalid file type, allowed types: PDF, DOC, DOCX")
	ErrFileTooLarge    = errors.New("file too large, maximum size: 10MB")
)

// IsValidationError reports whether err is user-correctable input rejection
// rather than an upstream failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidFileType) ||
		errors.Is(err, ErrFileTooLarge)
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Resume struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type Submission struct {
	Name   string
	Email  string
	Resume Resume
}

// ATSClient is the slice of the SmartRecruiters client this package needs.
type ATSClient interface {
	CreateCandidate(ctx context.Context, firstName, lastName, email string) (smartrecruiters.Candidate, error)
	UploadAttachment(ctx context.Context, candidateID, filename, contentType string, file io.Reader) error
}

type Service struct {
	ats ATSClient
}

func NewService(ats ATSClient) *Service {
	return &Service{ats: ats}
}

// Submit validates an application, creates the candidate in the ATS and
// uploads the resume. A failed upload after a successful create is still a
// failure to the caller; the ATS is the source of truth and a recruiter can
// resolve the duplicate, so there is no compensating delete.
func (s *Service) Submit(ctx context.Context, sub Submission) (candidateID string, err error) {
	if err := Validate(sub); err != nil {
		return "", err
	}

	firstName, lastName := SplitName(sub.Name)

	cand, err := s.ats.CreateCandidate(ctx, firstName, lastName, sub.Email)
	if err != nil {
		return "", fmt.Errorf("submit application: %w", err)
	}

	if err := s.ats.UploadAttachment(ctx, cand.ID, sub.Resume.Filename, sub.Resume.ContentType, sub.Resume.Content); err != nil {
		return "", fmt.Errorf("submit application: %w", err)
	}
	return cand.ID, nil
}

// Validate runs the pre-network checks in order; the first failure wins.
func Validate(sub Submission) error {
	if strings.TrimSpace(sub.Name) == "" || strings.TrimSpace(sub.Email) == "" || sub.Resume.Content == nil {
		return ErrMissingFields
	}
	if !emailRe.MatchString(sub.Email) {
		return ErrInvalidEmail
	}
	if !allowedResumeTypes[sub.Resume.ContentType] {
		return ErrInvalidFileType
	}
	if sub.Resume.Size > maxResumeBytes {
		return ErrFileTooLarge
	}
	return nil
}

// SplitName splits a full name on whitespace: first token is the first name,
// the rest joined with single spaces is the last name (empty for a single
// token; the ATS client backfills it with the first name).
func SplitName(name string) (firstName, lastName string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
