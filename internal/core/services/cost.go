package services

import (
	"math"
	"time"

	"github.com/srgjo27/club_membership/internal/core/domain"
)

// StayNights derives the billable number of days from a check-in/check-out
// pair: ceil of the difference in whole days, clamped to a minimum of 1.
// When either date is missing or check-in is after check-out, the prior
// value is returned unchanged so a partially entered request is not reset.
func StayNights(checkIn, checkOut *time.Time, prior int) int {
	if checkIn == nil || checkOut == nil || checkIn.After(*checkOut) {
		return prior
	}
	days := int(math.Ceil(checkOut.Sub(*checkIn).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// ComputeCost prices a booking: stay services scale linearly with the
// number of days, every other service type is flat-rate.
func ComputeCost(svc *domain.Service, numberOfDays int) float64 {
	if svc.IsStay() {
		if numberOfDays < 1 {
			numberOfDays = 1
		}
		return svc.Cost * float64(numberOfDays)
	}
	return svc.Cost
}
