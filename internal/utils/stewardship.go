package utils

import (
	"github.com/datamaphq/datamap/internal/entity"
	"github.com/google/uuid"
)

// StewardshipCounts are the four inputs to the reputation formula, each a
// plain count derived from query results.
type StewardshipCounts struct {
	HelpfulComments  int
	Badges           int
	ImprovedProducts int
	ManagedProducts  int
}

// ReputationScore weights helpful comments at 10, badges at 20, products with
// a quality improvement at 15 and managed products at 25.
func ReputationScore(counts StewardshipCounts) int {
	return 10*counts.HelpfulComments +
		20*counts.Badges +
		15*counts.ImprovedProducts +
		25*counts.ManagedProducts
}

// ReputationLevel maps a score to a level: every full 100 points is one level,
// starting at level 1.
func ReputationLevel(score int) int {
	return score/100 + 1
}

var badgeDescriptions = map[string]string{
	entity.BadgeTypeQuality:     "Awarded for consistently high-quality contributions",
	entity.BadgeTypeTrending:    "Awarded for comments with rapidly growing engagement",
	entity.BadgeTypeInfluential: "Awarded for comments that shaped catalog decisions",
}

// BadgeDescription returns the static description for a badge type.
func BadgeDescription(badgeType string) string {
	if desc, ok := badgeDescriptions[badgeType]; ok {
		return desc
	}
	return "Recognized contribution"
}

// CountImprovedProducts counts distinct products where some observation value
// exceeds the immediately preceding one for the same metric definition.
// Observations must be ordered by timestamp ascending.
func CountImprovedProducts(observations []entity.QualityMetric) int {
	type seriesKey struct {
		product    uuid.UUID
		definition uuid.UUID
	}

	previous := make(map[seriesKey]float64)
	improved := make(map[uuid.UUID]bool)

	for _, obs := range observations {
		key := seriesKey{product: obs.DataProductID, definition: obs.MetricDefinitionID}
		if last, seen := previous[key]; seen && obs.Value > last {
			improved[obs.DataProductID] = true
		}
		previous[key] = obs.Value
	}

	return len(improved)
}
