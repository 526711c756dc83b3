package types

// Country is an entry of the country picker.
type Country struct {
	Name string `json:"name"`
	Code string `json:"code"` // ISO 3166-1 alpha-2
}

type State struct {
	Name string `json:"name"`
}

// CityInfo represents a city in a list before its full details are fetched.
type CityInfo struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	AQI         string `json:"aqi,omitempty"` // e.g. "AQI 45 (Good)"
}

// City is the detailed city with its tourist spots.
type City struct {
	CityInfo
	Spots []TouristSpot `json:"spots"`
}

type TouristSpot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	AQI         string `json:"aqi,omitempty"`
}

type Activity struct {
	Time        string `json:"time"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type SpecialEvent struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Details  string `json:"details"`
}

type DailyPlan struct {
	Day          int           `json:"day"`
	Title        string        `json:"title"`
	Activities   []Activity    `json:"activities"`
	SpecialEvent *SpecialEvent `json:"specialEvent,omitempty"`
}

type Itinerary struct {
	TripTitle  string      `json:"tripTitle"`
	DailyPlans []DailyPlan `json:"dailyPlans"`
}

type Guide struct {
	Name        string   `json:"name"`
	Specialties []string `json:"specialties"`
	Bio         string   `json:"bio"`
	Image       string   `json:"image,omitempty"`
}

// VehicleType is the mode of transport for a ride plan.
type VehicleType string

const (
	VehicleBike VehicleType = "bike"
	VehicleCar  VehicleType = "car"
)

func (v VehicleType) Valid() bool { return v == VehicleBike || v == VehicleCar }

// RideStopTypes enumerates the allowed values of RideStop.Type.
var RideStopTypes = []string{"food", "rest", "scenic", "fuel", "city", "town"}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RideStop struct {
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Description      string   `json:"description"`
	Location         string   `json:"location"`         // e.g. "60 km from origin"
	DistanceFromLast string   `json:"distanceFromLast"` // e.g. "30 km"
	Weather          string   `json:"weather"`          // e.g. "Sunny, 25°C"
	AQI              string   `json:"aqi,omitempty"`
	Highlights       []string `json:"highlights"`
	Coordinates      *LatLng  `json:"coordinates,omitempty"`
}

type RideRoute struct {
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	Distance      string     `json:"distance"`
	Duration      string     `json:"duration"`
	RoadCondition string     `json:"roadCondition"`
	SafetyTips    []string   `json:"safetyTips"`
	Stops         []RideStop `json:"stops"`
}

// ItineraryRequest is the body of POST /itineraries.
type ItineraryRequest struct {
	City           string        `json:"city"`
	Days           int           `json:"days"`
	MustVisitSpots []TouristSpot `json:"mustVisitSpots"`
	StartDate      string        `json:"startDate"` // YYYY-MM-DD
}

// RideRequest is the body of POST /rides.
type RideRequest struct {
	Origin         string      `json:"origin"`
	Destination    string      `json:"destination"`
	VehicleType    VehicleType `json:"vehicleType"`
	StopIntervalKm int         `json:"stopIntervalKm"`
}
