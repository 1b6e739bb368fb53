package domain

import (
	"context"
	"errors"
)

// Notifier доставляет уведомление во внешний мессенджер.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// ErrDeliveryRejected мессенджер ответил неуспешным статусом.
var ErrDeliveryRejected = errors.New("delivery rejected by messaging provider")
