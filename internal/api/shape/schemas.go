// Package shape holds the response-shape descriptors sent to the LLM
// providers and the validator applied to what comes back.
package shape

import (
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

func str(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func arrayOf(items *genai.Schema, description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items, Description: description}
}

var country = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name": str(""),
		"code": str("Two-letter ISO 3166-1 alpha-2 code."),
	},
	Required: []string{"name", "code"},
}

var state = &genai.Schema{
	Type:       genai.TypeObject,
	Properties: map[string]*genai.Schema{"name": str("")},
	Required:   []string{"name"},
}

var cityInfo = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":    str(""),
		"country": str(""),
	},
	Required: []string{"name", "country"},
}

var touristSpot = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"id":          str("A unique, URL-friendly identifier for the spot (e.g., 'hawa-mahal')."),
		"name":        str(""),
		"description": str("A detailed and engaging description of the spot, around 2-3 sentences long."),
		"aqi":         str(`Current Air Quality Index (e.g., "AQI 45 (Good)"). Estimate based on typical levels.`),
	},
	Required: []string{"id", "name", "description", "aqi"},
}

var activity = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"time":        str(""),
		"description": str(""),
		"location":    str(""),
	},
	Required: []string{"time", "description", "location"},
}

var specialEvent = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":     str(""),
		"location": str(""),
		"details":  str("Details including timing and why it's recommended, relevant to the travel date."),
	},
}

var dailyPlan = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"day":          {Type: genai.TypeInteger},
		"title":        str(""),
		"activities":   arrayOf(activity, ""),
		"specialEvent": specialEvent,
	},
	Required: []string{"day", "title", "activities"},
}

var guide = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":        str(""),
		"specialties": arrayOf(str(""), "A list of 2-3 short specialties (e.g., 'History', 'Foodie')."),
		"bio":         str("A short, engaging bio for the guide, 2-3 sentences long."),
	},
	Required: []string{"name", "specialties", "bio"},
}

var rideStop = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":             str(""),
		"type":             {Type: genai.TypeString, Enum: types.RideStopTypes},
		"description":      str(""),
		"location":         str("Distance from origin (e.g., '45 km')"),
		"distanceFromLast": str("Distance from the previous stop (e.g., '30 km')"),
		"weather":          str("Expected weather condition (e.g., 'Sunny, 28°C')"),
		"aqi":              str("Air Quality Index (e.g., 'AQI 120 (Unhealthy)')"),
		"highlights":       arrayOf(str(""), "List of 2-3 key things to see or do here."),
	},
	Required: []string{"name", "type", "description", "location", "distanceFromLast", "weather", "aqi", "highlights"},
}

// Entity shapes. They are shared, read-only values.
var (
	Countries = arrayOf(country, "")
	States    = arrayOf(state, "")
	Cities    = arrayOf(cityInfo, "")

	DetailedCity = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":    str(""),
			"country": str(""),
			"spots":   arrayOf(touristSpot, "A list of 6 + of the most famous tourist spots in the city."),
		},
		Required: []string{"name", "country", "spots"},
	}

	Itinerary = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"tripTitle":  str(""),
			"dailyPlans": arrayOf(dailyPlan, ""),
		},
		Required: []string{"tripTitle", "dailyPlans"},
	}

	Guides = arrayOf(guide, "")

	RideRoute = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"origin":        str(""),
			"destination":   str(""),
			"distance":      str(""),
			"duration":      str(""),
			"roadCondition": str("Detailed description of road quality, traffic patterns, and any construction."),
			"safetyTips":    arrayOf(str(""), "3-5 specific safety tips for this route and vehicle type."),
			"stops": arrayOf(rideStop,
				"A sequential list of major cities, towns, and pit stops along the route from origin to destination."),
		},
		Required: []string{"origin", "destination", "distance", "duration", "roadCondition", "safetyTips", "stops"},
	}
)
