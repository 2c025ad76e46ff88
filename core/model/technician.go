package model

// Shift identifies the working shift of a technician.
type Shift string

const (
	ShiftMorning Shift = "Morning"
	ShiftEvening Shift = "Evening"
	ShiftNight   Shift = "Night"
)

// VehicleType describes how a technician travels between sites.
type VehicleType string

const (
	VehicleBike VehicleType = "Bike"
	VehicleVan  VehicleType = "Van"
	VehicleCar  VehicleType = "Car"
)

// Technician represents a field worker with skills, location and availability.
type Technician struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	ProfilePicURL   string      `json:"profilePicUrl"`
	Phone           string      `json:"phone"`
	Rating          float64     `json:"rating"`
	YearsExperience int         `json:"yearsExperience"`
	Shift           Shift       `json:"shift"`
	VehicleType     VehicleType `json:"vehicleType"`
	Skills          []string    `json:"skills"`
	Certifications  []string    `json:"certifications"`
	Languages       []string    `json:"languages"`
	Location        GeoPoint    `json:"location"`
	Available       bool        `json:"available"`
	Region          string      `json:"region"`
}
