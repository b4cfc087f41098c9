package utils

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.mongodb.org/mongo-driver/bson"

	"glowstore/backend/config"
	"glowstore/backend/dashboard"
	"glowstore/backend/logger"
	"glowstore/backend/models"
	"glowstore/backend/notify"
	"glowstore/backend/realtime"
)

// LowStockNotifier pushes the current stock report to admins on a
// schedule. The pusher is optional: without FCM credentials only email
// goes out.
type LowStockNotifier struct {
	Watcher *dashboard.Watcher
	Store   realtime.Store
	Pusher  *notify.Pusher
}

// StartScheduler runs the periodic low-stock check in the background.
func StartScheduler(n *LowStockNotifier) *gocron.Scheduler {
	s := gocron.NewScheduler(time.Local)
	s.Every(config.LowStockPollMinutes).Minutes().Do(n.CheckLowStock)
	s.StartAsync()
	return s
}

// CheckLowStock reads the dashboard state and alerts admins when any
// variant is low or out of stock. A partial delivery failure is logged
// and does not abort the remaining channels.
func (n *LowStockNotifier) CheckLowStock() {
	state := n.Watcher.State()
	if state.Loading {
		return
	}
	report := state.LowStock
	if len(report.LowStock) == 0 && len(report.OutOfStock) == 0 {
		return
	}
	logger.L().Infof("low stock check: %d low, %d out of stock", len(report.LowStock), len(report.OutOfStock))

	if err := notify.SendLowStockDigest(report); err != nil {
		logger.L().Errorf("low stock email failed: %v", err)
	}

	if n.Pusher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tokens := n.deviceTokens(ctx)
	if len(tokens) == 0 {
		return
	}
	title := "Stock alert"
	body := notify.FormatLowStockDigest(report)
	result, err := n.Pusher.Send(ctx, tokens, title, body)
	if err != nil {
		logger.L().Errorf("low stock push partially failed: %v", err)
	}
	logger.L().Infof("low stock push delivered: %d ok, %d failed", result.Success, result.Failure)
}

func (n *LowStockNotifier) deviceTokens(ctx context.Context) []string {
	snap, err := n.Store.Get(ctx, config.ColDeviceTokens)
	if err != nil {
		logger.L().Errorf("failed to load device tokens: %v", err)
		return nil
	}
	tokens := make([]string, 0, len(snap))
	for id, raw := range snap {
		var dt models.DeviceToken
		if err := bson.Unmarshal(raw, &dt); err != nil {
			logger.L().Warnf("skipping malformed device token %s: %v", id, err)
			continue
		}
		if dt.Token != "" {
			tokens = append(tokens, dt.Token)
		}
	}
	return tokens
}
