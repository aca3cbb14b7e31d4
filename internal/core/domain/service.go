package domain

import "github.com/google/uuid"

type ServiceType string

const (
	ServiceStay          ServiceType = "stay"
	ServiceVenue         ServiceType = "venue"
	ServiceDining        ServiceType = "dining"
	ServiceSports        ServiceType = "sports"
	ServiceFitness       ServiceType = "fitness"
	ServiceEntertainment ServiceType = "entertainment"
	ServiceFacility      ServiceType = "facility"
)

// Service is a static catalog entry. Read-only to the engine.
type Service struct {
	ID          uuid.UUID
	Name        string
	Type        ServiceType
	Description string
	Cost        float64
}

func (s *Service) IsStay() bool {
	return s.Type == ServiceStay
}

// DefaultServices seeds the catalog on first startup.
var DefaultServices = []Service{
	{Name: "Accommodation", Type: ServiceStay, Cost: 1000, Description: "Comfortable rooms for officers and their families"},
	{Name: "Conference Hall", Type: ServiceVenue, Cost: 2000, Description: "Fully equipped conference hall for meetings and events"},
	{Name: "Main Event Hall", Type: ServiceVenue, Cost: 3000, Description: "Spacious hall for large gatherings and functions"},
	{Name: "Barbeque Dining", Type: ServiceDining, Cost: 800, Description: "Outdoor barbeque dining experience"},
	{Name: "Badminton", Type: ServiceSports, Cost: 300, Description: "Indoor badminton courts"},
	{Name: "Table Tennis", Type: ServiceSports, Cost: 200, Description: "Table tennis facilities"},
	{Name: "GYM", Type: ServiceFitness, Cost: 500, Description: "Fully equipped gym with trainers"},
	{Name: "Mini Theatre", Type: ServiceEntertainment, Cost: 1000, Description: "Private movie screening facility"},
	{Name: "Billiards", Type: ServiceSports, Cost: 400, Description: "Professional billiards tables"},
	{Name: "Parking", Type: ServiceFacility, Cost: 100, Description: "Secure parking for vehicles"},
}
