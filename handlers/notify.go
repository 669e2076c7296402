package handlers

import "kiosk-ordering-api/realtime"

// Notifier is the shared real-time hub, set during route setup. Delivery
// is fire-and-forget; a nil hub disables broadcasting entirely.
var Notifier *realtime.Hub

func notify(event string, data any, rooms ...string) {
	if Notifier != nil {
		Notifier.Broadcast(event, data, rooms...)
	}
}
