package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/MichalMitros/price-tracker/internal/price"
	"github.com/samber/lo"
)

//go:generate mockery --name Publisher --filename publisher.go

// Publisher is RabbitMQ messages publisher.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message []byte) error
}

// AlertTriggeredEvent is published when smart alert fires.
type AlertTriggeredEvent struct {
	AlertID          string           `json:"alertId"`
	UserID           string           `json:"userId"`
	ProductID        string           `json:"productId"`
	ProductName      string           `json:"productName"`
	ProductImage     string           `json:"productImage"`
	AlertType        models.AlertType `json:"alertType"`
	OriginalPrice    int64            `json:"originalPrice"`
	TargetPrice      int64            `json:"targetPrice"`
	BestCurrentPrice int64            `json:"bestCurrentPrice"`
	BestCurrentStore string           `json:"bestCurrentStore"`
	BestCurrentURL   string           `json:"bestCurrentUrl"`
	Message          string           `json:"message"`
	TriggeredAt      time.Time        `json:"triggeredAt"`
}

// RabbitMQNotifier publishes triggered alerts as events to routing key.
type RabbitMQNotifier struct {
	publisher  Publisher
	routingKey string
}

// NewRabbitMQNotifier returns new RabbitMQNotifier publishing events to routingKey.
func NewRabbitMQNotifier(publisher Publisher, routingKey string) RabbitMQNotifier {
	return RabbitMQNotifier{
		publisher:  publisher,
		routingKey: routingKey,
	}
}

// AlertTriggered publishes AlertTriggeredEvent of alert.
func (n RabbitMQNotifier) AlertTriggered(ctx context.Context, alert models.SmartAlert) error {
	msg, err := json.Marshal(NewAlertTriggeredEvent(alert))
	if err != nil {
		return fmt.Errorf("can't marshal alert triggered event: %w", err)
	}

	if err := n.publisher.Publish(ctx, n.routingKey, msg); err != nil {
		return fmt.Errorf("can't publish alert triggered event: %w", err)
	}

	return nil
}

// NewAlertTriggeredEvent returns event describing triggered alert.
// Event time is the time of the check which triggered alert.
func NewAlertTriggeredEvent(alert models.SmartAlert) AlertTriggeredEvent {
	best, _ := lo.Find(alert.TrackedStores, func(s models.StoreSnapshot) bool {
		return s.Store == alert.BestCurrentStore && s.Price == alert.BestCurrentPrice
	})

	return AlertTriggeredEvent{
		AlertID:          alert.ID,
		UserID:           alert.UserID,
		ProductID:        alert.ProductID,
		ProductName:      alert.ProductName,
		ProductImage:     alert.ProductImage,
		AlertType:        alert.AlertType,
		OriginalPrice:    alert.OriginalPrice,
		TargetPrice:      alert.TargetPrice,
		BestCurrentPrice: alert.BestCurrentPrice,
		BestCurrentStore: alert.BestCurrentStore,
		BestCurrentURL:   best.URL,
		Message:          message(alert),
		TriggeredAt:      alert.LastCheckedAt,
	}
}

func message(alert models.SmartAlert) string {
	switch alert.AlertType {
	case models.AlertTypeTargetPrice:
		return fmt.Sprintf("%s reached your target price: %s at %s (target: %s)",
			alert.ProductName,
			price.Format(alert.BestCurrentPrice),
			alert.BestCurrentStore,
			price.Format(alert.TargetPrice),
		)
	default:
		return fmt.Sprintf("%s price changed: %s at %s (was: %s)",
			alert.ProductName,
			price.Format(alert.BestCurrentPrice),
			alert.BestCurrentStore,
			price.Format(alert.OriginalPrice),
		)
	}
}
