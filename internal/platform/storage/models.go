package storage

import (
	"encoding/json"
	"fmt"

	"github.com/MichalMitros/price-tracker/internal/platform/models"

	pgmodels "github.com/MichalMitros/price-tracker/internal/platform/storage/gen/postgres/public/model"
)

//go:generate make -C ../../../ generate-db

func toDBRun(run *models.Run) *pgmodels.RefreshRun {
	return &pgmodels.RefreshRun{
		ID:              int32(run.ID),
		CreatedAt:       run.CreatedAt,
		FinishedAt:      run.FinishedAt,
		Success:         run.IsSuccess,
		StatusMessage:   run.StatusMessage,
		RefreshedAlerts: run.RefreshedAlerts,
		TriggeredAlerts: run.TriggeredAlerts,
		FailedAlerts:    run.FailedAlerts,
	}
}

func fromDBRun(run *pgmodels.RefreshRun) *models.Run {
	return &models.Run{
		ID:              int(run.ID),
		CreatedAt:       run.CreatedAt,
		FinishedAt:      run.FinishedAt,
		IsSuccess:       run.Success,
		StatusMessage:   run.StatusMessage,
		RefreshedAlerts: run.RefreshedAlerts,
		TriggeredAlerts: run.TriggeredAlerts,
		FailedAlerts:    run.FailedAlerts,
	}
}

// ToDBSmartAlert converts models.SmartAlert into postgres smart alert model.
// Snapshots and alternatives are stored as json.
func ToDBSmartAlert(alert *models.SmartAlert) (*pgmodels.SmartAlert, error) {
	trackedStores, err := toJSONArray(alert.TrackedStores)
	if err != nil {
		return nil, fmt.Errorf("can't encode tracked stores: %w", err)
	}

	alternatives, err := toJSONArray(alert.Alternatives)
	if err != nil {
		return nil, fmt.Errorf("can't encode alternatives: %w", err)
	}

	return &pgmodels.SmartAlert{
		ID:               alert.ID,
		UserID:           alert.UserID,
		ProductID:        alert.ProductID,
		ProductName:      alert.ProductName,
		ProductImage:     alert.ProductImage,
		ProductStore:     alert.ProductStore,
		ProductURL:       alert.ProductURL,
		ProductRating:    alert.ProductRating,
		Category:         alert.Category,
		OriginalPrice:    alert.OriginalPrice,
		TargetPrice:      alert.TargetPrice,
		AlertType:        string(alert.AlertType),
		TrackedStores:    trackedStores,
		BestCurrentPrice: alert.BestCurrentPrice,
		BestCurrentStore: alert.BestCurrentStore,
		Alternatives:     alternatives,
		IsActive:         alert.IsActive,
		IsTriggered:      alert.IsTriggered,
		CreatedAt:        alert.CreatedAt,
		LastCheckedAt:    alert.LastCheckedAt,
	}, nil
}

// FromDBSmartAlert converts postgres smart alert model into models.SmartAlert.
func FromDBSmartAlert(alert *pgmodels.SmartAlert) (*models.SmartAlert, error) {
	trackedStores := make([]models.StoreSnapshot, 0)
	if err := fromJSONArray(alert.TrackedStores, &trackedStores); err != nil {
		return nil, fmt.Errorf("can't decode tracked stores of alert %s: %w", alert.ID, err)
	}

	alternatives := make([]models.AlternativeProduct, 0)
	if err := fromJSONArray(alert.Alternatives, &alternatives); err != nil {
		return nil, fmt.Errorf("can't decode alternatives of alert %s: %w", alert.ID, err)
	}

	return &models.SmartAlert{
		ID:               alert.ID,
		UserID:           alert.UserID,
		ProductID:        alert.ProductID,
		ProductName:      alert.ProductName,
		ProductImage:     alert.ProductImage,
		ProductStore:     alert.ProductStore,
		ProductURL:       alert.ProductURL,
		ProductRating:    alert.ProductRating,
		Category:         alert.Category,
		OriginalPrice:    alert.OriginalPrice,
		TargetPrice:      alert.TargetPrice,
		AlertType:        models.AlertType(alert.AlertType),
		TrackedStores:    trackedStores,
		BestCurrentPrice: alert.BestCurrentPrice,
		BestCurrentStore: alert.BestCurrentStore,
		Alternatives:     alternatives,
		IsActive:         alert.IsActive,
		IsTriggered:      alert.IsTriggered,
		CreatedAt:        alert.CreatedAt.UTC(),
		LastCheckedAt:    alert.LastCheckedAt.UTC(),
	}, nil
}

// toJSONArray encodes slice as json array, nil slice is encoded as empty array.
func toJSONArray[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func fromJSONArray[T any](data string, items *[]T) error {
	if data == "" || data == "null" {
		return nil
	}
	return json.Unmarshal([]byte(data), items)
}
