package website

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/webscope/siteinfo/internal/extract"
	"github.com/webscope/siteinfo/internal/logger"
)

// Extractor is the markup extraction contract the store depends on.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (extract.Info, error)
}

// Service is the website record store. It deduplicates by URL: known URLs
// are returned as-is without any outbound call, unknown ones are extracted
// and persisted.
type Service struct {
	repo      Repository
	extractor Extractor
	log       logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, extractor Extractor, log logger.Logger) *Service {
	return &Service{
		repo:      repo,
		extractor: extractor,
		log:       log,
		now:       time.Now,
	}
}

// CreateOrGet returns the record for rawURL, creating it through extraction
// when absent. The second return value reports whether a new record was
// created. Validation failures and extraction failures are returned as
// typed errors; no partial record is ever stored.
func (s *Service) CreateOrGet(ctx context.Context, rawURL string) (*Record, bool, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.FindByURL(ctx, rawURL)
	if err != nil {
		return nil, false, fmt.Errorf("lookup by url: %w", err)
	}
	if existing != nil {
		s.log.Debug("website record already exists",
			logger.String("url", rawURL),
			logger.String("id", existing.ID))
		return existing, false, nil
	}

	info, err := s.extractor.Extract(ctx, rawURL)
	if err != nil {
		return nil, false, err
	}

	now := s.now().UTC()
	rec := &Record{
		ID:               uuid.NewString(),
		URL:              info.URL,
		DomainName:       info.DomainName,
		Protocol:         info.Protocol,
		Title:            info.Title,
		Images:           info.Images,
		StylesheetsCount: info.StylesheetsCount,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		// A concurrent request may have created the record between the
		// lookup and the insert; return the winner.
		if errors.Is(err, ErrURLExists) {
			winner, ferr := s.repo.FindByURL(ctx, rawURL)
			if ferr == nil && winner != nil {
				return winner, false, nil
			}
		}
		return nil, false, fmt.Errorf("insert record: %w", err)
	}

	s.log.Info("website record created",
		logger.String("url", rec.URL),
		logger.String("id", rec.ID),
		logger.Int("images", len(rec.Images)),
		logger.Int("stylesheets", rec.StylesheetsCount))

	return rec, true, nil
}

// Get retrieves a record by ID.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns all records, newest first.
func (s *Service) List(ctx context.Context) ([]*Record, error) {
	return s.repo.List(ctx)
}

// Delete removes a record by ID, returning ErrNotFound when absent.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("website record deleted", logger.String("id", id))
	return nil
}
