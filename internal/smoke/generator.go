package smoke

import (
	"math/rand"
)

// featureNames matches the gateway's default column order.
var featureNames = []string{
	"age", "sex", "bmi", "bp",
	"s1", "s2", "s3", "s4", "s5", "s6",
}

// featureSpread keeps generated values in the normalized range the
// diabetes dataset uses.
const featureSpread = 0.2

// generatePayload produces one randomized feature mapping.
func generatePayload(rng *rand.Rand) map[string]any {
	payload := make(map[string]any, len(featureNames))
	for _, name := range featureNames {
		payload[name] = (rng.Float64() - 0.5) * featureSpread
	}
	return payload
}
