package alerts

import "github.com/MichalMitros/price-tracker/internal/platform/models"

// ShouldTrigger reports whether alert should fire for its current best price.
// Inactive and already triggered alerts never fire. Unknown alert types never fire.
func ShouldTrigger(a models.SmartAlert) bool {
	if !a.IsActive || a.IsTriggered {
		return false
	}

	switch a.AlertType {
	case models.AlertTypeTargetPrice:
		return a.BestCurrentPrice <= a.TargetPrice
	case models.AlertTypeEveryChange:
		return a.BestCurrentPrice != a.OriginalPrice
	default:
		return false
	}
}
