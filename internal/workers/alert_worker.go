package workers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"farewatch/backend/internal/db/repositories"
	"farewatch/backend/internal/logging"
	"farewatch/backend/internal/metrics"
	gormModels "farewatch/backend/internal/models/gorm"
	"farewatch/backend/internal/notify"
)

// AlertRequest is one price-drop alert queued for delivery.
type AlertRequest struct {
	Alert notify.Alert
}

// AlertQueue buffers alerts between the price-watch job and the worker so a
// slow webhook never stalls a scan.
var AlertQueue = make(chan AlertRequest, 100)

// AlertWorker drains AlertQueue, delivers each alert to every notifier, and
// records delivered alerts in history.
type AlertWorker struct {
	notifiers []notify.Notifier
	alertRepo *repositories.AlertRepo
	metrics   *metrics.MetricsRegistry
}

// NewAlertWorker creates an alert worker. The repo and metrics registry may
// be nil; delivery still happens without history or counters.
func NewAlertWorker(notifiers []notify.Notifier, alertRepo *repositories.AlertRepo, reg *metrics.MetricsRegistry) *AlertWorker {
	return &AlertWorker{
		notifiers: notifiers,
		alertRepo: alertRepo,
		metrics:   reg,
	}
}

// Start consumes the queue until the context is cancelled.
func (w *AlertWorker) Start(ctx context.Context) {
	logging.Info("Alert worker started", "notifiers", len(w.notifiers))

	for {
		select {
		case <-ctx.Done():
			logging.Info("Alert worker stopping")
			return
		case req := <-AlertQueue:
			w.dispatch(ctx, req.Alert)
		}
	}
}

func (w *AlertWorker) dispatch(ctx context.Context, alert notify.Alert) {
	for _, notifier := range w.notifiers {
		if err := notifier.Notify(ctx, alert); err != nil {
			logging.Warn("Alert delivery failed",
				"channel", notifier.Channel(),
				"destination", alert.Destination,
				"error", err.Error(),
			)
			continue
		}

		if w.metrics != nil {
			w.metrics.AlertsSentTotal.Inc()
		}

		if w.alertRepo != nil {
			record := &gormModels.PriceAlert{
				ID:          uuid.NewString(),
				Airline:     alert.Airline,
				Origin:      alert.Origin,
				Destination: alert.Destination,
				Price:       alert.Price,
				Channel:     notifier.Channel(),
				SentAt:      time.Now(),
			}
			if err := w.alertRepo.Record(ctx, record); err != nil {
				logging.Warn("Failed to record alert history", "error", err.Error())
			}
		}
	}
}
