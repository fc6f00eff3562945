package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"halo-backend/internal/analysis"
)

var (
	ErrEmptyName     = errors.New("upload name must not be empty")
	ErrNotSuccessful = errors.New("only a successful analysis outcome can be saved")
	ErrNoMenuItems   = errors.New("no menu items provided")
)

// Archive stores the normalized image alongside the analysis result.
// Optional; a nil archive disables it.
type Archive interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	repo    Repository
	archive Archive
}

func NewService(repo Repository, archive Archive) *Service {
	return &Service{repo: repo, archive: archive}
}

// SaveResult persists a successful analysis outcome for the user. The
// image bytes, when present, are archived best-effort; the analysis
// result is the record of truth and its insert either fully succeeds or
// leaves no state behind.
func (s *Service) SaveResult(
	ctx context.Context,
	userID int,
	name string,
	outcome analysis.Outcome,
	image []byte,
) (*MenuUpload, error) {

	if outcome.State != analysis.OutcomeSuccess {
		return nil, ErrNotSuccessful
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	upload := &MenuUpload{
		UserID:         userID,
		UploadName:     name,
		AnalysisResult: outcome.Items,
	}

	if s.archive != nil && len(image) > 0 {
		key := fmt.Sprintf("menus/%d/%s.jpg", userID, uuid.New().String())
		if _, err := s.archive.Upload(ctx, key, bytes.NewReader(image), "image/jpeg"); err != nil {
			log.Printf("image archive failed for user %d: %v", userID, err)
		} else {
			upload.ImageKey = &key
		}
	}

	if err := s.repo.Save(ctx, upload); err != nil {
		return nil, err
	}
	return upload, nil
}

func (s *Service) List(ctx context.Context, userID, limit int) ([]MenuUpload, error) {
	return s.repo.List(ctx, userID, limit)
}

func (s *Service) Get(ctx context.Context, userID, id int) (*MenuUpload, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Rename(ctx context.Context, userID, id int, name string) (*MenuUpload, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if err := s.repo.Rename(ctx, userID, id, strings.TrimSpace(name)); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id int) error {
	return s.repo.Delete(ctx, userID, id)
}

// SanitizeMenuItems trims the caller-supplied item names and drops empty
// entries, preserving order.
func SanitizeMenuItems(items []string) ([]string, error) {
	sanitized := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			sanitized = append(sanitized, item)
		}
	}
	if len(sanitized) == 0 {
		return nil, ErrNoMenuItems
	}
	return sanitized, nil
}
