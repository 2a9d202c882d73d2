package alerts_test

import (
	"testing"

	"github.com/MichalMitros/price-tracker/internal/alerts"
	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/MichalMitros/price-tracker/internal/platform/models/modelstesting"
	"github.com/stretchr/testify/assert"
)

func TestUnitShouldTrigger(t *testing.T) {
	tests := map[string]struct {
		modify func(a *models.SmartAlert)
		want   bool
	}{
		"target price reached exactly": {
			modify: func(a *models.SmartAlert) {
				a.AlertType = models.AlertTypeTargetPrice
				a.TargetPrice = 300000
				a.BestCurrentPrice = 300000
			},
			want: true,
		},
		"best price below target": {
			modify: func(a *models.SmartAlert) {
				a.AlertType = models.AlertTypeTargetPrice
				a.TargetPrice = 300000
				a.BestCurrentPrice = 299999
			},
			want: true,
		},
		"best price above target": {
			modify: func(a *models.SmartAlert) {
				a.AlertType = models.AlertTypeTargetPrice
				a.TargetPrice = 300000
				a.BestCurrentPrice = 300001
			},
			want: false,
		},
		"every change with unchanged price": {
			modify: func(a *models.SmartAlert) {
				a.AlertType = models.AlertTypeEveryChange
				a.OriginalPrice = 345000
				a.BestCurrentPrice = 345000
			},
			want: false,
		},
		"every change with price drop": {
			modify: func(a *models.SmartAlert) {
				a.AlertType = models.AlertTypeEveryChange
				a.OriginalPrice = 345000
				a.BestCurrentPrice = 340000
			},
			want: true,
		},
		"every change with price rise": {
			modify: func(a *models.SmartAlert) {
				a.AlertType = models.AlertTypeEveryChange
				a.OriginalPrice = 345000
				a.BestCurrentPrice = 350000
			},
			want: true,
		},
		"inactive alert": {
			modify: func(a *models.SmartAlert) {
				a.AlertType = models.AlertTypeTargetPrice
				a.TargetPrice = 300000
				a.BestCurrentPrice = 100
				a.IsActive = false
			},
			want: false,
		},
		"already triggered alert": {
			modify: func(a *models.SmartAlert) {
				a.AlertType = models.AlertTypeEveryChange
				a.OriginalPrice = 345000
				a.BestCurrentPrice = 100
				a.IsTriggered = true
			},
			want: false,
		},
		"unknown alert type": {
			modify: func(a *models.SmartAlert) {
				a.AlertType = models.AlertType("price_rise")
				a.TargetPrice = 300000
				a.OriginalPrice = 345000
				a.BestCurrentPrice = 100
			},
			want: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			alert := modelstesting.FakeSmartAlert(tt.modify)

			assert.Equal(t, tt.want, alerts.ShouldTrigger(alert), "should decide trigger correctly")
		})
	}
}
