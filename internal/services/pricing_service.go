package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"rentwheels/internal/models"
	"rentwheels/internal/repositories/interfaces"
	"rentwheels/pkg/logger"
)

type PricingService interface {
	// ResolvePackage finds the unique active rate tier for a vehicle.
	ResolvePackage(ctx context.Context, displacementCC int, vehicleType models.VehicleType) (*models.PricingPackage, error)

	// ComputeSettlement applies the usage-based settlement rule: the greater
	// of distance cost and time cost, plus the damage surcharge.
	ComputeSettlement(odometerStart, odometerEnd float64, pickup, returned time.Time, pkg *models.PricingPackage, damageCost float64) (*models.Settlement, error)

	// EstimateCost is the hour-based estimate the advance payment is derived
	// from at request time.
	EstimateCost(pkg *models.PricingPackage, hours int) float64
}

type pricingService struct {
	packageRepo interfaces.PackageRepository
	logger      *logger.Logger
}

func NewPricingService(packageRepo interfaces.PackageRepository, log *logger.Logger) PricingService {
	return &pricingService{
		packageRepo: packageRepo,
		logger:      log,
	}
}

func (s *pricingService) ResolvePackage(ctx context.Context, displacementCC int, vehicleType models.VehicleType) (*models.PricingPackage, error) {
	if displacementCC <= 0 {
		return nil, fmt.Errorf("%w: displacement must be positive", ErrValidationFailed)
	}

	matches, err := s.packageRepo.FindActiveForVehicle(ctx, displacementCC, vehicleType)
	if err != nil {
		return nil, fmt.Errorf("failed to look up pricing packages: %w", err)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: displacement=%d type=%s", ErrNoPricingTierFound, displacementCC, vehicleType)
	}

	if len(matches) > 1 {
		// Overlapping active tiers are a vendor data problem; resolve
		// deterministically instead of failing the booking: narrowest range
		// wins, ties broken by lower minimum, then by id.
		sort.Slice(matches, func(i, j int) bool {
			if matches[i].RangeWidth() != matches[j].RangeWidth() {
				return matches[i].RangeWidth() < matches[j].RangeWidth()
			}
			if matches[i].MinDisplacementCC != matches[j].MinDisplacementCC {
				return matches[i].MinDisplacementCC < matches[j].MinDisplacementCC
			}
			return matches[i].ID.Hex() < matches[j].ID.Hex()
		})

		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID.Hex()
		}
		s.logger.WithFields(map[string]interface{}{
			"displacement_cc": displacementCC,
			"vehicle_type":    vehicleType,
			"package_ids":     ids,
		}).Warn("Multiple active pricing packages match; picking narrowest range")
	}

	return matches[0], nil
}

func (s *pricingService) ComputeSettlement(odometerStart, odometerEnd float64, pickup, returned time.Time, pkg *models.PricingPackage, damageCost float64) (*models.Settlement, error) {
	distance := odometerEnd - odometerStart
	if distance < 0 {
		return nil, fmt.Errorf("%w: start=%.1f end=%.1f", ErrInvalidOdometerReading, odometerStart, odometerEnd)
	}

	elapsed := returned.Sub(pickup)
	if elapsed < 0 {
		return nil, fmt.Errorf("%w: pickup=%s return=%s", ErrInvalidTimeWindow, pickup.Format(time.RFC3339), returned.Format(time.RFC3339))
	}

	if damageCost < 0 {
		return nil, fmt.Errorf("%w: damage cost must not be negative", ErrValidationFailed)
	}

	// Ceiling, not rounding: a started hour is a billed hour.
	durationHours := int(math.Ceil(elapsed.Hours()))

	costPerDistance := distance * pkg.PricePerKM
	costPerTime := float64(durationHours) * pkg.PricePerHour

	// Charge for whichever dimension represents heavier usage, never both.
	finalCost := math.Max(costPerDistance, costPerTime) + damageCost

	return &models.Settlement{
		DistanceTravelledKM: distance,
		DurationHours:       durationHours,
		CostPerDistance:     costPerDistance,
		CostPerTime:         costPerTime,
		DamageCost:          damageCost,
		FinalCost:           finalCost,
	}, nil
}

func (s *pricingService) EstimateCost(pkg *models.PricingPackage, hours int) float64 {
	if hours < 1 {
		hours = 1
	}
	return float64(hours) * pkg.PricePerHour
}
