package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MichalMitros/price-tracker/internal/platform"
	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/MichalMitros/price-tracker/internal/platform/rabbitmq"
	"github.com/MichalMitros/price-tracker/pkg/v1/commander"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Consumer --filename consumer.go
//go:generate mockery --name Tracker --filename tracker.go

// Consumer consumes messages from queue.
type Consumer interface {
	Consume(ctx context.Context, queue string, handler rabbitmq.HandlerFunc) (<-chan error, error)
}

// Tracker manages smart alerts.
type Tracker interface {
	CreateAlert(
		ctx context.Context,
		userID string,
		product models.Product,
		alertType models.AlertType,
		targetPrice *int64,
	) (models.SmartAlert, error)
	RefreshAlert(ctx context.Context, userID, id string) (models.SmartAlert, error)
	ResetAlert(ctx context.Context, userID, id string) (models.SmartAlert, error)
	DeleteAlert(ctx context.Context, userID, id string) error
}

// RMQHandler handles RMQ alert commands.
type RMQHandler struct {
	consumer Consumer
	tracker  Tracker
	logger   *zerolog.Logger
}

// NewHandler returns new RMQHandler.
func NewHandler(consumer Consumer, tracker Tracker, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		consumer: consumer,
		tracker:  tracker,
		logger:   logger,
	}
}

// Start starts consuming and handling alert commands from RMQ.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.consumer.Consume(ctx, queue, h.Handle)
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

// Handle decodes alert command from message and executes it.
func (h *RMQHandler) Handle(ctx context.Context, message []byte) error {
	cmd, err := decodeMessage(message)
	if err != nil {
		return err
	}

	h.logger.Debug().
		Str("command", string(cmd.Command)).
		Str("userId", cmd.UserID).
		Str("alertId", cmd.AlertID).
		Msg("command started")

	alertID, err := h.execute(ctx, cmd)
	if err != nil {
		return fmt.Errorf("%s failed: %w", cmd.Command, err)
	}

	h.logger.Debug().
		Str("command", string(cmd.Command)).
		Str("userId", cmd.UserID).
		Str("alertId", alertID).
		Msg("command finished")

	return nil
}

// execute runs cmd and returns id of affected alert.
func (h *RMQHandler) execute(ctx context.Context, cmd *commander.AlertCommand) (string, error) {
	switch cmd.Command {
	case commander.CommandCreateAlert:
		alert, err := h.tracker.CreateAlert(
			ctx,
			cmd.UserID,
			toProduct(*cmd.Product),
			models.AlertType(cmd.AlertType),
			cmd.TargetPrice,
		)
		return alert.ID, err
	case commander.CommandRefreshAlert:
		alert, err := h.tracker.RefreshAlert(ctx, cmd.UserID, cmd.AlertID)
		return alert.ID, err
	case commander.CommandResetAlert:
		alert, err := h.tracker.ResetAlert(ctx, cmd.UserID, cmd.AlertID)
		return alert.ID, err
	case commander.CommandDeleteAlert:
		err := h.tracker.DeleteAlert(ctx, cmd.UserID, cmd.AlertID)
		if errors.Is(err, platform.ErrAlertNotFound) {
			h.logger.Warn().
				Str("alertId", cmd.AlertID).
				Msg("deleted alert doesn't exist")
			return cmd.AlertID, nil
		}
		return cmd.AlertID, err
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Command)
	}
}

func decodeMessage(msg []byte) (*commander.AlertCommand, error) {
	var cmd commander.AlertCommand
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode alert command: %w", err)
	}

	if err := validate(&cmd); err != nil {
		return nil, err
	}

	return &cmd, nil
}

func validate(cmd *commander.AlertCommand) error {
	if cmd.UserID == "" {
		return fmt.Errorf("%w: missing user id", ErrInvalidCommand)
	}

	switch cmd.Command {
	case commander.CommandCreateAlert:
		if cmd.Product == nil || cmd.Product.Name == "" {
			return fmt.Errorf("%w: missing product", ErrInvalidCommand)
		}
		if cmd.AlertType != commander.AlertTypeEveryChange && cmd.AlertType != commander.AlertTypeTargetPrice {
			return fmt.Errorf("%w: unsupported alert type %q", ErrInvalidCommand, cmd.AlertType)
		}
	case commander.CommandRefreshAlert, commander.CommandResetAlert, commander.CommandDeleteAlert:
		if cmd.AlertID == "" {
			return fmt.Errorf("%w: missing alert id", ErrInvalidCommand)
		}
	}

	return nil
}

func toProduct(p commander.Product) models.Product {
	return models.Product{
		ID:            p.ID,
		Name:          p.Name,
		ImageURL:      p.ImageURL,
		URL:           p.URL,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Store:         p.Store,
		Category:      p.Category,
		Rating:        p.Rating,
		ReviewsCount:  p.ReviewsCount,
		InStock:       p.InStock,
	}
}
