package commander

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockery --name Sender --filename sender.go

// Command names action requested from price tracker.
type Command string

const (
	// CommandCreateAlert creates smart alert of product.
	CommandCreateAlert Command = "create_alert"
	// CommandRefreshAlert refreshes prices of single alert.
	CommandRefreshAlert Command = "refresh_alert"
	// CommandDeleteAlert deletes alert.
	CommandDeleteAlert Command = "delete_alert"
	// CommandResetAlert rearms triggered alert.
	CommandResetAlert Command = "reset_alert"
)

// Alert types accepted by create_alert command.
const (
	AlertTypeEveryChange = "every_change"
	AlertTypeTargetPrice = "target_price"
)

// Product is product found in store search results.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ImageURL      string  `json:"imageUrl"`
	URL           string  `json:"url"`
	Price         string  `json:"price"`
	OriginalPrice string  `json:"originalPrice,omitempty"`
	Store         string  `json:"store"`
	Category      string  `json:"category,omitempty"`
	Rating        float64 `json:"rating"`
	ReviewsCount  int     `json:"reviewsCount"`
	InStock       bool    `json:"inStock"`
}

// AlertCommand is message handled by price tracker.
// Product, AlertType and TargetPrice are used only by create_alert, AlertID by other commands.
type AlertCommand struct {
	Command     Command  `json:"command"`
	UserID      string   `json:"userId"`
	AlertID     string   `json:"alertId,omitempty"`
	Product     *Product `json:"product,omitempty"`
	AlertType   string   `json:"alertType,omitempty"`
	TargetPrice *int64   `json:"targetPrice,omitempty"`
}

// Sender sends messages.
type Sender interface {
	Send(context.Context, []byte) error
}

// AlertCommander sends alert commands.
type AlertCommander struct {
	sender Sender
}

// NewAlertCommander returns new AlertCommander using provided sender for sending messages.
func NewAlertCommander(sender Sender) AlertCommander {
	return AlertCommander{
		sender: sender,
	}
}

// SendCreateAlert sends command creating alert of userID tracking product.
// targetPrice is ignored by every_change alerts.
func (c AlertCommander) SendCreateAlert(
	ctx context.Context,
	userID string,
	product Product,
	alertType string,
	targetPrice *int64,
) error {
	return c.send(ctx, AlertCommand{
		Command:     CommandCreateAlert,
		UserID:      userID,
		Product:     &product,
		AlertType:   alertType,
		TargetPrice: targetPrice,
	})
}

// SendRefreshAlert sends command refreshing alert of userID.
func (c AlertCommander) SendRefreshAlert(ctx context.Context, userID, alertID string) error {
	return c.send(ctx, AlertCommand{Command: CommandRefreshAlert, UserID: userID, AlertID: alertID})
}

// SendDeleteAlert sends command deleting alert of userID.
func (c AlertCommander) SendDeleteAlert(ctx context.Context, userID, alertID string) error {
	return c.send(ctx, AlertCommand{Command: CommandDeleteAlert, UserID: userID, AlertID: alertID})
}

// SendResetAlert sends command rearming alert of userID.
func (c AlertCommander) SendResetAlert(ctx context.Context, userID, alertID string) error {
	return c.send(ctx, AlertCommand{Command: CommandResetAlert, UserID: userID, AlertID: alertID})
}

func (c AlertCommander) send(ctx context.Context, cmd AlertCommand) error {
	cmdMsg, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("can't marshal %s command: %w", cmd.Command, err)
	}

	return c.sender.Send(ctx, cmdMsg)
}
