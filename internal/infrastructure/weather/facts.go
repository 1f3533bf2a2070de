package weather

import "time"

// plantFacts rotates on the home feed.
var plantFacts = []string{
	"Plants can communicate with each other through their root systems.",
	"Some plants can grow without soil using hydroponics.",
	"The smell of freshly cut grass is actually a plant distress signal.",
	"Bamboo is the fastest-growing woody plant in the world.",
	"The tallest sunflower on record reached 30 feet 1 inch tall.",
	"Plants release oxygen during photosynthesis.",
	"Some plants can survive for months without water by going dormant.",
	"The study of plants is called botany.",
	"Plants can improve indoor air quality by filtering toxins.",
	"A single tree can absorb 48 pounds of CO2 per year.",
	"Some plants can live for thousands of years.",
	"Plants have been used for medicine for over 60,000 years.",
}

// FactOfTheDay returns the fact for the given moment. The rotation is
// deterministic per day so every client sees the same fact.
func FactOfTheDay(now time.Time) string {
	day := now.UTC().Truncate(24 * time.Hour).Unix() / 86400
	return plantFacts[int(day)%len(plantFacts)]
}
