package candidates

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"careers-gateway/internal/smartrecruiters"
)

type fakeATS struct {
	createErr error
	uploadErr error

	createdFirst, createdLast, createdEmail string
	uploadedTo, uploadedName, uploadedType  string
	uploadedBytes                           []byte
}

func (f *fakeATS) CreateCandidate(ctx context.Context, firstName, lastName, email string) (smartrecruiters.Candidate, error) {
	if f.createErr != nil {
		return smartrecruiters.Candidate{}, f.createErr
	}
	f.createdFirst, f.createdLast, f.createdEmail = firstName, lastName, email
	return smartrecruiters.Candidate{ID: "mock-id", FirstName: firstName, LastName: lastName, Email: email}, nil
}

func (f *fakeATS) UploadAttachment(ctx context.Context, candidateID, filename, contentType string, file io.Reader) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploadedTo, f.uploadedName, f.uploadedType = candidateID, filename, contentType
	f.uploadedBytes, _ = io.ReadAll(file)
	return nil
}

func pdfResume(size int) Resume {
	return Resume{
		Filename:    "cv.pdf",
		ContentType: "application/pdf",
		Size:        int64(size),
		Content:     strings.NewReader(strings.Repeat("x", size)),
	}
}

func TestSplitName(t *testing.T) {
	cases := []struct {
		in          string
		first, last string
	}{
		{"Maria", "Maria", ""},
		{"Maria Silva Santos", "Maria", "Silva Santos"},
		{"  John   Doe  ", "John", "Doe"},
	}
	for _, tc := range cases {
		first, last := SplitName(tc.in)
		require.Equal(t, tc.first, first, "input %q", tc.in)
		require.Equal(t, tc.last, last, "input %q", tc.in)
	}
}

func TestValidateOrdering(t *testing.T) {
	// Presence is checked before format: an empty email is MissingFields,
	// not InvalidEmail.
	err := Validate(Submission{Name: "John", Email: "", Resume: pdfResume(10)})
	require.ErrorIs(t, err, ErrMissingFields)

	err = Validate(Submission{Name: "John", Email: "not-an-email", Resume: pdfResume(10)})
	require.ErrorIs(t, err, ErrInvalidEmail)

	err = Validate(Submission{Name: "John", Email: "a@b.co", Resume: pdfResume(10)})
	require.NoError(t, err)
}

func TestValidateMissingFile(t *testing.T) {
	err := Validate(Submission{Name: "John", Email: "a@b.co"})
	require.ErrorIs(t, err, ErrMissingFields)
}

func TestValidateFileType(t *testing.T) {
	sub := Submission{Name: "John", Email: "a@b.co", Resume: Resume{
		Filename:    "cv.txt",
		ContentType: "text/plain",
		Size:        5,
		Content:     strings.NewReader("hello"),
	}}
	require.ErrorIs(t, Validate(sub), ErrInvalidFileType)

	for _, ct := range []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	} {
		sub.Resume.ContentType = ct
		require.NoError(t, Validate(sub), "content type %s", ct)
	}
}

func TestValidateFileSizeBoundary(t *testing.T) {
	// Exactly 10 MiB passes; one byte more fails. The reader is tiny on
	// purpose, validation trusts the declared size.
	sub := Submission{Name: "John", Email: "a@b.co", Resume: Resume{
		Filename:    "cv.pdf",
		ContentType: "application/pdf",
		Size:        10 << 20,
		Content:     strings.NewReader("stub"),
	}}
	require.NoError(t, Validate(sub))

	sub.Resume.Size = 10<<20 + 1
	require.ErrorIs(t, Validate(sub), ErrFileTooLarge)
}

func TestSubmitEndToEnd(t *testing.T) {
	fake := &fakeATS{}
	svc := NewService(fake)

	id, err := svc.Submit(context.Background(), Submission{
		Name:   "John Doe",
		Email:  "john@x.com",
		Resume: pdfResume(1024),
	})
	require.NoError(t, err)
	require.Equal(t, "mock-id", id)

	require.Equal(t, "John", fake.createdFirst)
	require.Equal(t, "Doe", fake.createdLast)
	require.Equal(t, "john@x.com", fake.createdEmail)

	require.Equal(t, "mock-id", fake.uploadedTo)
	require.Equal(t, "cv.pdf", fake.uploadedName)
	require.Equal(t, "application/pdf", fake.uploadedType)
	require.Len(t, fake.uploadedBytes, 1024)
}

func TestSubmitValidatesBeforeNetwork(t *testing.T) {
	fake := &fakeATS{createErr: errors.New("should never be called")}
	svc := NewService(fake)

	_, err := svc.Submit(context.Background(), Submission{Name: "John", Email: "bad", Resume: pdfResume(10)})
	require.ErrorIs(t, err, ErrInvalidEmail)
	require.True(t, IsValidationError(err))
}

func TestSubmitUpstreamFailures(t *testing.T) {
	fake := &fakeATS{createErr: errors.New("503 from ATS")}
	svc := NewService(fake)

	_, err := svc.Submit(context.Background(), Submission{Name: "John Doe", Email: "john@x.com", Resume: pdfResume(10)})
	require.Error(t, err)
	require.False(t, IsValidationError(err))

	// Upload failure after a successful create is still a failure; the
	// created candidate stays in the ATS (no rollback).
	fake = &fakeATS{uploadErr: errors.New("upload rejected")}
	svc = NewService(fake)

	_, err = svc.Submit(context.Background(), Submission{Name: "John Doe", Email: "john@x.com", Resume: pdfResume(10)})
	require.Error(t, err)
	require.False(t, IsValidationError(err))
	require.Equal(t, "John", fake.createdFirst, "candidate was created before the upload failed")
}
