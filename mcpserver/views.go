package mcpserver

import (
	"time"

	"github.com/rabwill/fieldops/core/model"
)

// AssignmentView is the flattened assignment shape returned by the list and
// map tools: location is lifted to top-level address/lat/lng fields for
// map-ready rendering.
type AssignmentView struct {
	ID                                 string     `json:"id"`
	Site                               string     `json:"site"`
	Category                           string     `json:"category"`
	Priority                           string     `json:"priority"`
	SLADue                             time.Time  `json:"slaDue"`
	EstimatedStartDateTime             time.Time  `json:"estimatedStartDateTime"`
	EstimatedEndDateTime               time.Time  `json:"estimatedEndDateTime"`
	Description                        string     `json:"description"`
	RequiredSkills                     []string   `json:"requiredSkills"`
	CustomerName                       string     `json:"customerName"`
	CustomerPhone                      string     `json:"customerPhone"`
	CustomerProfilePicURL              string     `json:"customerProfilePicUrl"`
	AssetID                            string     `json:"assetId"`
	EstimatedDurationMinutes           int        `json:"estimatedDurationMinutes"`
	EstimatedTechnicianArrivalDateTime *time.Time `json:"estimatedTechnicianArrivalDateTime"`
	AssignedTechnicianID               *string    `json:"assignedTechnicianId"`
	SiteImageURL                       string     `json:"siteImageUrl"`
	Tags                               []string   `json:"tags"`
	Status                             string     `json:"status"`
	Address                            string     `json:"address"`
	Lat                                float64    `json:"lat"`
	Lng                                float64    `json:"lng"`
}

func assignmentView(a model.Assignment) AssignmentView {
	return AssignmentView{
		ID:                                 a.ID,
		Site:                               a.Site,
		Category:                           a.Category,
		Priority:                           string(a.Priority),
		SLADue:                             a.SLADue,
		EstimatedStartDateTime:             a.EstimatedStartDateTime,
		EstimatedEndDateTime:               a.EstimatedEndDateTime,
		Description:                        a.Description,
		RequiredSkills:                     a.RequiredSkills,
		CustomerName:                       a.CustomerName,
		CustomerPhone:                      a.CustomerPhone,
		CustomerProfilePicURL:              a.CustomerProfilePicURL,
		AssetID:                            a.AssetID,
		EstimatedDurationMinutes:           a.EstimatedDurationMinutes,
		EstimatedTechnicianArrivalDateTime: a.EstimatedTechnicianArrivalDateTime,
		AssignedTechnicianID:               a.AssignedTechnicianID,
		SiteImageURL:                       a.SiteImageURL,
		Tags:                               a.Tags,
		Status:                             string(a.Status),
		Address:                            a.Location.Address,
		Lat:                                a.Location.Lat,
		Lng:                                a.Location.Lng,
	}
}

func assignmentViews(as []model.Assignment) []AssignmentView {
	res := make([]AssignmentView, len(as))
	for i, a := range as {
		res[i] = assignmentView(a)
	}
	return res
}

// TechnicianView is the flattened technician shape returned by the lookup
// tool.
type TechnicianView struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	ProfilePicURL   string   `json:"profilePicUrl"`
	Phone           string   `json:"phone"`
	Rating          float64  `json:"rating"`
	YearsExperience int      `json:"yearsExperience"`
	Shift           string   `json:"shift"`
	VehicleType     string   `json:"vehicleType"`
	Skills          []string `json:"skills"`
	Certifications  []string `json:"certifications"`
	Languages       []string `json:"languages"`
	Available       bool     `json:"available"`
	Address         string   `json:"address"`
	Lat             float64  `json:"lat"`
	Lng             float64  `json:"lng"`
}

func technicianView(t model.Technician) TechnicianView {
	return TechnicianView{
		ID:              t.ID,
		Name:            t.Name,
		ProfilePicURL:   t.ProfilePicURL,
		Phone:           t.Phone,
		Rating:          t.Rating,
		YearsExperience: t.YearsExperience,
		Shift:           string(t.Shift),
		VehicleType:     string(t.VehicleType),
		Skills:          t.Skills,
		Certifications:  t.Certifications,
		Languages:       t.Languages,
		Available:       t.Available,
		Address:         t.Location.Address,
		Lat:             t.Location.Lat,
		Lng:             t.Location.Lng,
	}
}

func technicianViews(ts []model.Technician) []TechnicianView {
	res := make([]TechnicianView, len(ts))
	for i, t := range ts {
		res[i] = technicianView(t)
	}
	return res
}
