package repository

import (
	"context"
	"errors"
	"fmt"

	"hospital-finder/internal/geo"
	"hospital-finder/internal/models"
	apperrors "hospital-finder/pkg/errors"

	"gorm.io/gorm"
)

type HospitalRepository struct {
	db      *gorm.DB
	queries *QueryBuilder
}

func NewHospitalRepo(db *gorm.DB, queries *QueryBuilder) *HospitalRepository {
	return &HospitalRepository{db: db, queries: queries}
}

// SearchByName retrieves hospitals inside box whose name starts a word with keyword.
// Errors from the database are returned unchanged.
func (r *HospitalRepository) SearchByName(ctx context.Context, keyword *string, box geo.BoundingBox) ([]models.Hospital, Shape, error) {
	q, err := r.queries.SearchByName(keyword, box)
	if err != nil {
		return nil, 0, err
	}
	hospitals, err := r.fetch(ctx, q)
	return hospitals, q.Shape, err
}

// FilterHospitals retrieves distinct hospitals matching the filter.
// Errors from the database are returned unchanged.
func (r *HospitalRepository) FilterHospitals(ctx context.Context, f Filter) ([]models.Hospital, Shape, error) {
	q, err := r.queries.FilterHospitals(f)
	if err != nil {
		return nil, 0, err
	}
	hospitals, err := r.fetch(ctx, q)
	return hospitals, q.Shape, err
}

// GetHospitalDetail retrieves a hospital with its specialties and opening hours
func (r *HospitalRepository) GetHospitalDetail(ctx context.Context, id int64) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.WithContext(ctx).
		Preload("Parts").
		Preload("Times").
		Where("hospital_id = ?", id).
		First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital %d not found", id))
		}
		return nil, err
	}
	return &hospital, nil
}

func (r *HospitalRepository) fetch(ctx context.Context, q Query) ([]models.Hospital, error) {
	hospitals := []models.Hospital{}
	err := r.db.WithContext(ctx).Raw(q.SQL, q.Args...).Scan(&hospitals).Error
	if err != nil {
		return nil, err
	}
	return hospitals, nil
}
