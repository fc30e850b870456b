package store

import (
	"context"
	"time"

	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

// NopStore is used when persistence is off. Nothing is saved, so every start
// begins with empty analytics.
type NopStore struct{}

var _ model.SnapshotStore = NopStore{}

func NewNopStore() NopStore { return NopStore{} }

func (NopStore) Save(context.Context, model.AnalyticsSnapshot) error { return nil }
func (NopStore) Latest(context.Context) (*model.AnalyticsSnapshot, error) { return nil, nil }
func (NopStore) Prune(context.Context, time.Duration) error { return nil }
