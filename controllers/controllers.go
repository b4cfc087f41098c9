// Package controllers holds the gin handlers of the admin API. Handlers
// read derived state from the dashboard watcher and write through the
// realtime store; they never touch collections directly.
package controllers

import (
	"glowstore/backend/cache"
	"glowstore/backend/dashboard"
	"glowstore/backend/notify"
	"glowstore/backend/realtime"
	"glowstore/backend/vouchers"
)

var (
	store      realtime.Store
	watcher    *dashboard.Watcher
	chartCache cache.ChartCache
	voucherSvc *vouchers.Service
	pusher     *notify.Pusher
)

// Init wires the handler package. The pusher may be nil when FCM is not
// configured; push endpoints then report an error instead of sending.
func Init(s realtime.Store, w *dashboard.Watcher, cc cache.ChartCache, vs *vouchers.Service, p *notify.Pusher) {
	store = s
	watcher = w
	chartCache = cc
	voucherSvc = vs
	pusher = p
}
