package attachment

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dentalcare/clinic-api/internal/model"
	"github.com/dentalcare/clinic-api/internal/repository"
	apperrors "github.com/dentalcare/clinic-api/pkg/errors"
)

// Service handles both attachment stores: patient documents persisted in
// the database, and appointment files kept on disk with the stored name
// recorded on the appointment row. Every operation re-checks that the
// referenced patient or appointment belongs to the caller's account
// before touching file data.
type Service struct {
	files    repository.PatientFileRepository
	patients repository.PatientRepository

	dir         string
	maxSize     int64
	allowedExts map[string]bool
}

func NewService(files repository.PatientFileRepository, patients repository.PatientRepository, dir string, maxSizeMB int64, extensions string) *Service {
	allowed := make(map[string]bool)
	for _, ext := range strings.Split(extensions, ",") {
		ext = strings.TrimSpace(strings.ToLower(ext))
		if ext != "" {
			allowed[ext] = true
		}
	}
	return &Service{
		files:       files,
		patients:    patients,
		dir:         dir,
		maxSize:     maxSizeMB << 20,
		allowedExts: allowed,
	}
}

func (s *Service) validateName(name string, size int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if len(s.allowedExts) > 0 && !s.allowedExts[ext] {
		return apperrors.NewValidation(fmt.Sprintf("file type %s is not allowed", ext), nil)
	}
	if size > s.maxSize {
		return apperrors.NewValidation("file exceeds the size limit", nil)
	}
	return nil
}

// UploadPatientFile stores a document for a patient, replacing any
// previous one.
func (s *Service) UploadPatientFile(ctx context.Context, userID, patientID uuid.UUID, name, contentType string, size int64, src io.Reader) (*model.PatientFile, error) {
	if _, err := s.patients.Get(ctx, userID, patientID); err != nil {
		return nil, err
	}
	if err := s.validateName(name, size); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(src, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, apperrors.NewValidation("file exceeds the size limit", nil)
	}

	file := &model.PatientFile{
		PatientID:   patientID,
		Name:        filepath.Base(name),
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}
	if err := s.files.Replace(ctx, file); err != nil {
		return nil, err
	}

	// Metadata only; the blob stays out of responses.
	file.Data = nil
	return file, nil
}

func (s *Service) ListPatientFiles(ctx context.Context, userID, patientID uuid.UUID) ([]*model.PatientFile, error) {
	if _, err := s.patients.Get(ctx, userID, patientID); err != nil {
		return nil, err
	}
	return s.files.List(ctx, patientID)
}

func (s *Service) GetPatientFile(ctx context.Context, userID, patientID, fileID uuid.UUID) (*model.PatientFile, error) {
	if _, err := s.patients.Get(ctx, userID, patientID); err != nil {
		return nil, err
	}
	return s.files.Get(ctx, patientID, fileID)
}

// SaveAppointmentFile writes an uploaded appointment attachment to the
// uploads directory and returns the stored name to record on the row.
func (s *Service) SaveAppointmentFile(name string, size int64, src io.Reader) (string, error) {
	if err := s.validateName(name, size); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	storedName := uuid.New().String() + "_" + filepath.Base(name)
	dst, err := os.Create(filepath.Join(s.dir, storedName))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, s.maxSize)); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return storedName, nil
}

// AppointmentFilePath resolves a stored attachment name to its on-disk
// path. The name is reduced to its base component so a crafted name
// cannot escape the uploads directory.
func (s *Service) AppointmentFilePath(storedName string) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(storedName))
	if _, err := os.Stat(path); err != nil {
		return "", apperrors.NewNotFound("file", err)
	}
	return path, nil
}
