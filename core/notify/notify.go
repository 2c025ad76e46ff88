// Package notify defines how committed dispatch records are pushed to field
// channels (e.g. a technician's mobile client subscribed over MQTT).
package notify

import (
	"context"

	"github.com/rabwill/fieldops/core/model"
)

// Notifier delivers a dispatch record to the assigned technician's channel.
type Notifier interface {
	PublishDispatch(ctx context.Context, rec model.DispatchRecord) error
	Close() error
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) PublishDispatch(context.Context, model.DispatchRecord) error { return nil }

func (NopNotifier) Close() error { return nil }
