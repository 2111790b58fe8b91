package guidance

import (
	"fmt"
	"math"

	"github.com/theoremus-urban-solutions/surface-nav/geo"
)

// PresentableDistance formats a remaining distance in meters for the panel.
// Long distances are shown in tenths of a mile, rounded up so the
// countdown never reads 0.0 before the turn; short ones in feet.
func PresentableDistance(meters float64) string {
	const (
		feetThreshold = 0.05 // miles
		atTurnFeet    = 50.0
	)
	if meters <= 0 || math.IsNaN(meters) {
		return ""
	}
	mi := geo.Miles(meters)
	if mi < feetThreshold {
		ft := mi * geo.FeetPerMile
		if ft < atTurnFeet {
			return "now"
		}
		return fmt.Sprintf("%d feet", int(math.Round(ft/50)*50))
	}
	tenths := math.Ceil(mi*10-1e-9) / 10
	return fmt.Sprintf("%.1f mile%s", tenths, ternary(tenths == 1, "", "s"))
}

func ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
