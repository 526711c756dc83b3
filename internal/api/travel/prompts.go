package travel

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

const countriesPrompt = "List all countries in the world with their two-letter ISO 3166-1 alpha-2 code, sorted alphabetically by name."

func statesPrompt(country string) string {
	return fmt.Sprintf("List all major states/provinces/regions for %s, sorted alphabetically.", country)
}

func topCitiesPrompt(state, country string) string {
	return fmt.Sprintf(`List the top 10 most popular tourist cities in %s, %s.
For each city, provide its name and country.`, state, country)
}

func cityPrompt(city string) string {
	return fmt.Sprintf(`Generate detailed travel information for %q.
Include the city's name, country.
Also, provide a list of its 6 most famous tourist spots.
For each spot, include a unique ID, name, estimated AQI (Air Quality Index), and an engaging description.`, city)
}

func itineraryPrompt(req types.ItineraryRequest) string {
	names := make([]string, 0, len(req.MustVisitSpots))
	for _, s := range req.MustVisitSpots {
		if n := strings.TrimSpace(s.Name); n != "" {
			names = append(names, n)
		}
	}
	spots := strings.Join(names, ", ")
	if spots == "" {
		spots = "popular attractions"
	}
	return fmt.Sprintf(`Create a vibrant, culturally-rich %d-day itinerary for %s, starting %s.
The user's must-visit spots are: %s.
For each day, create a practical, timed schedule that logically includes the selected spots.
For each evening, suggest a unique, specific local event relevant to the start date.
Return a single JSON object.`, req.Days, req.City, req.StartDate, spots)
}

func guidesPrompt(city string) string {
	return fmt.Sprintf(`You are a travel agency manager. Create a list of 3 diverse, fictional tour guides for hire in %s.
For each guide, provide:
1. A realistic name.
2. 2-3 specialties (e.g., 'Ancient History', 'Street Food Expert').
3. A short, compelling bio (2-3 sentences).`, city)
}

func ridePrompt(req types.RideRequest) string {
	return fmt.Sprintf(`Plan a detailed road trip from %s to %s by %s.
Provide a SEQUENTIAL list of stops including major cities, towns, and recommended pit stops.
CRITICAL: You must try to find a relevant stop approximately every %d km. It doesn't have to be exact, but aim for this frequency to ensure frequent breaks.
For each stop, provide:
1. Distance from the previous stop.
2. Expected weather (assume current season).
3. Estimated Air Quality Index (AQI).
4. Key highlights or famous things (e.g., specific food, landmark).
5. Type of stop (city, town, food, fuel, etc.).

Also provide overall distance, duration, road conditions, and safety tips.`,
		req.Origin, req.Destination, req.VehicleType, req.StopIntervalKm)
}
