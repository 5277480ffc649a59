package handler

import (
	"context"
	"net/http"
	"strconv"

	"hospital-finder/internal/geo"
	"hospital-finder/internal/models"
	"hospital-finder/internal/repository"
	apperrors "hospital-finder/pkg/errors"
	"hospital-finder/pkg/utils"

	"github.com/gin-gonic/gin"
)

// HospitalFinder is the search capability the handler exposes over HTTP
type HospitalFinder interface {
	SearchByName(ctx context.Context, keyword string, box geo.BoundingBox) ([]models.Hospital, error)
	FilterHospitals(ctx context.Context, f repository.Filter) ([]models.Hospital, error)
	GetHospitalDetail(ctx context.Context, id int64) (*models.Hospital, error)
}

type HospitalHandler struct {
	hospitalService HospitalFinder
	radiusKm        float64
}

func NewHospitalHandler(hospitalService HospitalFinder, radiusKm float64) *HospitalHandler {
	return &HospitalHandler{
		hospitalService: hospitalService,
		radiusKm:        radiusKm,
	}
}

type boxQuery struct {
	East  float64 `form:"e"`
	West  float64 `form:"w"`
	South float64 `form:"s"`
	North float64 `form:"n"`
}

func (q boxQuery) box() geo.BoundingBox {
	return geo.BoundingBox{East: q.East, West: q.West, South: q.South, North: q.North}
}

type filterFlags struct {
	Part    int `form:"part" binding:"min=0"`
	Sat     int `form:"sat" binding:"min=0,max=1"`
	Sun     int `form:"sun" binding:"min=0,max=1"`
	Holiday int `form:"holiday" binding:"min=0,max=1"`
	Night   int `form:"night" binding:"min=0,max=1"`
}

func (q filterFlags) filter(box geo.BoundingBox) repository.Filter {
	return repository.Filter{
		Box:  box,
		Part: q.Part,
		Hours: repository.HourFlags{
			Sat:     q.Sat,
			Sun:     q.Sun,
			Holiday: q.Holiday,
			Night:   q.Night,
		},
	}
}

type filterQuery struct {
	boxQuery
	filterFlags
}

type nearQuery struct {
	X    float64 `form:"x" binding:"required"`
	Y    float64 `form:"y" binding:"required"`
	Km   float64 `form:"km" binding:"min=0"`
	Word string  `form:"word"`
	filterFlags
}

// SearchByName finds hospitals in the box whose name matches ?word
func (h *HospitalHandler) SearchByName(c *gin.Context) {
	var q boxQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.HandleError(c, apperrors.NewValidationError("Invalid query: "+err.Error()), "")
		return
	}

	hospitals, err := h.hospitalService.SearchByName(c.Request.Context(), c.Query("word"), q.box())
	if err != nil {
		utils.HandleError(c, err, "Failed to search hospitals")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// FilterHospitals finds hospitals in the box by specialty and opening hours
func (h *HospitalHandler) FilterHospitals(c *gin.Context) {
	var q filterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.HandleError(c, apperrors.NewValidationError("Invalid query: "+err.Error()), "")
		return
	}

	hospitals, err := h.hospitalService.FilterHospitals(c.Request.Context(), q.filter(q.box()))
	if err != nil {
		utils.HandleError(c, err, "Failed to filter hospitals")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// NearbyHospitals searches a box around (?x, ?y). With ?word it behaves like
// SearchByName, otherwise like FilterHospitals.
func (h *HospitalHandler) NearbyHospitals(c *gin.Context) {
	var q nearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.HandleError(c, apperrors.NewValidationError("Invalid query: "+err.Error()), "")
		return
	}

	km := q.Km
	if km == 0 {
		km = h.radiusKm
	}
	box := geo.Around(q.X, q.Y, km)

	var (
		hospitals []models.Hospital
		err       error
	)
	if q.Word != "" {
		hospitals, err = h.hospitalService.SearchByName(c.Request.Context(), q.Word, box)
	} else {
		hospitals, err = h.hospitalService.FilterHospitals(c.Request.Context(), q.filter(box))
	}
	if err != nil {
		utils.HandleError(c, err, "Failed to search hospitals")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"hospitals": hospitals,
		"count":     len(hospitals),
		"box":       box,
	})
}

// GetHospitalDetail retrieves a hospital with its specialties and opening hours
func (h *HospitalHandler) GetHospitalDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid hospital ID")
		return
	}

	hospital, err := h.hospitalService.GetHospitalDetail(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err, "Failed to fetch hospital")
		return
	}

	utils.SuccessResponse(c, hospital)
}
