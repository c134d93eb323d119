// Package quote serves fee calculations to the HTTP layer. It wraps the fee
// engine with caching, persistence of calculated records and logging.
package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "leasefee/internal/errors"
	"leasefee/internal/models"
	"leasefee/internal/repositories"
	"leasefee/internal/repositories/cache"
	"leasefee/internal/services/fee"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Cache is the subset of the cache service used for comparison results.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// RecordInput describes a calculation to persist.
type RecordInput struct {
	BasePrice       float64
	TransactionType fee.TransactionType
	Options         fee.Options
	ListingID       string
	CreatedBy       uint
}

type Service struct {
	calc         *fee.Calculator
	repo         repositories.FeeRecordRepository
	cache        Cache
	log          zerolog.Logger
	newReference func() string
}

func NewService(calc *fee.Calculator, repo repositories.FeeRecordRepository, c Cache, log zerolog.Logger) *Service {
	return &Service{
		calc:         calc,
		repo:         repo,
		cache:        c,
		log:          log.With().Str("component", "quote").Logger(),
		newReference: uuid.NewString,
	}
}

// Calculator exposes the engine the service was built with.
func (s *Service) Calculator() *fee.Calculator {
	return s.calc
}

func (s *Service) Breakdown(basePrice float64, t fee.TransactionType, opts fee.Options) (*fee.FeeBreakdown, error) {
	b, err := s.calc.CalculateFeeBreakdown(basePrice, t, opts)
	if err != nil {
		return nil, s.reject("breakdown", t, err)
	}
	return b, nil
}

func (s *Service) TotalPrice(basePrice float64, t fee.TransactionType, opts fee.Options) (float64, error) {
	total, err := s.calc.CalculateTotalPrice(basePrice, t, opts)
	if err != nil {
		return 0, s.reject("total", t, err)
	}
	return total, nil
}

func (s *Service) LandlordReceipt(basePrice float64, t fee.TransactionType, opts fee.Options) (*fee.LandlordReceipt, error) {
	r, err := s.calc.CalculateLandlordNetReceipt(basePrice, t, opts)
	if err != nil {
		return nil, s.reject("landlord_receipt", t, err)
	}
	return r, nil
}

func (s *Service) TenantPayment(basePrice float64, t fee.TransactionType, opts fee.Options) (*fee.TenantPayment, error) {
	p, err := s.calc.CalculateTenantPayment(basePrice, t, opts)
	if err != nil {
		return nil, s.reject("tenant_payment", t, err)
	}
	return p, nil
}

func (s *Service) Display(basePrice float64, t fee.TransactionType, opts fee.Options) (*fee.DisplayBreakdown, error) {
	b, err := s.Breakdown(basePrice, t, opts)
	if err != nil {
		return nil, err
	}
	d := fee.FormatBreakdownForDisplay(b)
	return &d, nil
}

// Validate never fails; a nil basePrice is reported as missing.
func (s *Service) Validate(basePrice *float64, t fee.TransactionType, opts fee.Options) fee.ValidationResult {
	return s.calc.ValidateFeeCalculation(basePrice, t, opts)
}

// Compare prices basePrice under every transaction type. Results are cached;
// cache failures are logged and the comparison is computed directly.
func (s *Service) Compare(ctx context.Context, basePrice float64, opts fee.Options) ([]fee.TypeComparison, error) {
	key := s.compareKey(basePrice, opts)

	if s.cache != nil {
		var cached []fee.TypeComparison
		found, err := s.cache.Get(ctx, key, &cached)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("key", key).Msg("compare cache read failed")
		case found:
			return cached, nil
		}
	}

	rows, err := s.calc.CompareFeesByType(basePrice, opts)
	if err != nil {
		return nil, s.reject("compare", "", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, rows); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("compare cache write failed")
		}
	}
	return rows, nil
}

func (s *Service) Batch(items []fee.BatchItem) (*fee.BatchResult, error) {
	res, err := s.calc.CalculateBatchFees(items)
	if err != nil {
		return nil, s.reject("batch", "", err)
	}
	s.log.Debug().
		Int("items", res.ItemCount).
		Float64("total_fee", res.TotalFee).
		Msg("batch calculated")
	return res, nil
}

// Record calculates the DB shape of a breakdown and stores it under a new reference.
func (s *Service) Record(ctx context.Context, in RecordInput) (*models.FeeRecord, error) {
	rec, err := s.calc.FormatFeeBreakdownForDB(in.BasePrice, in.TransactionType, in.Options)
	if err != nil {
		return nil, s.reject("record", in.TransactionType, err)
	}

	calculatedAt, err := time.Parse(time.RFC3339, rec.CalculatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse calculated_at %q: %w", rec.CalculatedAt, err)
	}

	record := &models.FeeRecord{
		Reference:         s.newReference(),
		ListingID:         in.ListingID,
		TransactionType:   string(rec.TransactionType),
		BasePrice:         rec.BasePrice,
		AdjustedPrice:     rec.AdjustedPrice,
		PlatformFee:       rec.PlatformFee,
		LandlordShare:     rec.LandlordShare,
		TotalFee:          rec.TotalFee,
		TotalPrice:        rec.TotalPrice,
		EffectiveRate:     rec.EffectiveRate,
		MinimumFeeApplied: rec.MinimumFeeApplied,
		IsFlatFee:         rec.IsFlatFee,
		Multipliers: models.JSON{
			"urgency": rec.Multipliers.Urgency,
			"buyout":  rec.Multipliers.Buyout,
		},
		FeeStructureVersion: rec.FeeStructureVersion,
		CalculatedAt:        calculatedAt,
		CreatedBy:           in.CreatedBy,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.log.Error().Err(err).Str("reference", record.Reference).Msg("failed to store fee record")
		return nil, apperrors.ErrPersistence.Wrap(err)
	}

	s.log.Info().
		Str("reference", record.Reference).
		Str("transaction_type", record.TransactionType).
		Float64("total_fee", record.TotalFee).
		Msg("fee record stored")
	return record, nil
}

func (s *Service) GetRecord(ctx context.Context, reference string) (*models.FeeRecord, error) {
	record, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, repositories.ErrFeeRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound.Wrap(err)
		}
		return nil, fmt.Errorf("failed to get fee record: %w", err)
	}
	return record, nil
}

func (s *Service) ListRecords(ctx context.Context, filter models.FeeRecordFilter, offset, limit int) ([]models.FeeRecord, int64, error) {
	if filter.TransactionType != "" && !fee.TransactionType(filter.TransactionType).Valid() {
		return nil, 0, apperrors.ErrInvalidFeeInput.Wrap(
			fmt.Errorf("unsupported transaction type %q", filter.TransactionType))
	}
	records, total, err := s.repo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list fee records: %w", err)
	}
	return records, total, nil
}

func (s *Service) compareKey(basePrice float64, opts fee.Options) string {
	c := s.calc.Constants()
	applyMinimum := opts.ApplyMinimumFee == nil || *opts.ApplyMinimumFee
	return cache.GenerateKey("fees", "compare", fmt.Sprintf("%s|%g|%g|%g|%g|%g|%g|%g|%t|%g|%g",
		fee.FeeStructureVersion, c.PlatformRate, c.LandlordRate, c.TotalRate, c.TraditionalMarkup, c.MinFeeAmount,
		basePrice, opts.UrgencyMultiplier, applyMinimum, opts.BuyoutMultiplier, opts.SwapSettlement))
}

// reject maps engine errors to domain errors.
func (s *Service) reject(op string, t fee.TransactionType, err error) error {
	s.log.Debug().Err(err).Str("op", op).Str("transaction_type", string(t)).Msg("calculation rejected")

	switch {
	case errors.Is(err, fee.ErrInvalidInput):
		return apperrors.ErrInvalidFeeInput.Wrap(err)
	case errors.Is(err, fee.ErrEmptyBatch):
		return apperrors.ErrEmptyBatch.Wrap(err)
	}
	return err
}
