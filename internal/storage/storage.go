package storage

import "swapScope/internal/model"

// Storage defines a sink for alert records.
type Storage interface {
	PutAlertBatch(alerts []model.AlertRecord) error
}
