package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"hospital-finder/internal/geo"
	"hospital-finder/internal/models"
	"hospital-finder/internal/repository"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
)

// HospitalRepository is the data source the service reads from
type HospitalRepository interface {
	SearchByName(ctx context.Context, keyword *string, box geo.BoundingBox) ([]models.Hospital, repository.Shape, error)
	FilterHospitals(ctx context.Context, f repository.Filter) ([]models.Hospital, repository.Shape, error)
	GetHospitalDetail(ctx context.Context, id int64) (*models.Hospital, error)
}

type HospitalService struct {
	hospitalRepo HospitalRepository
}

func NewHospitalService(hospitalRepo HospitalRepository) *HospitalService {
	return &HospitalService{hospitalRepo: hospitalRepo}
}

// SearchByName finds hospitals in box by name. A blank keyword searches by location only.
func (s *HospitalService) SearchByName(ctx context.Context, keyword string, box geo.BoundingBox) ([]models.Hospital, error) {
	var word *string
	if trimmed := strings.TrimSpace(keyword); trimmed != "" {
		word = &trimmed
	}

	start := time.Now()
	hospitals, shape, err := s.hospitalRepo.SearchByName(ctx, word, box)
	logSearch(ctx, "search", shape, len(hospitals), start, err).
		Bool("keyword", word != nil).
		Msg("hospital search")
	return hospitals, err
}

// FilterHospitals finds hospitals in the filter's box offering the requested
// specialty and any of the requested opening hours
func (s *HospitalService) FilterHospitals(ctx context.Context, f repository.Filter) ([]models.Hospital, error) {
	start := time.Now()
	hospitals, shape, err := s.hospitalRepo.FilterHospitals(ctx, f)
	logSearch(ctx, "filter", shape, len(hospitals), start, err).
		Int("part", f.Part).
		Msg("hospital filter")
	return hospitals, err
}

// GetHospitalDetail retrieves one hospital with specialties and opening hours
func (s *HospitalService) GetHospitalDetail(ctx context.Context, id int64) (*models.Hospital, error) {
	return s.hospitalRepo.GetHospitalDetail(ctx, id)
}

func logSearch(ctx context.Context, op string, shape repository.Shape, count int, start time.Time, err error) *zerolog.Event {
	logger := zerolog.Ctx(ctx)
	if err == nil {
		return logger.Debug().
			Str("op", op).
			Stringer("shape", shape).
			Int("count", count).
			Dur("took", time.Since(start))
	}

	event := logger.Error().Err(err).Str("op", op).Dur("took", time.Since(start))
	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) {
		event = event.Uint16("mysql_errno", mysqlErr.Number)
	}
	return event
}
