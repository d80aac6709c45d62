// Package notify delivers WhatsApp and Telegram notifications triggered
// by ledger changes. Delivery is best effort: the booking flow never
// waits on, or fails because of, the messaging gateway.
package notify

import "context"

// Sender delivers a message to a single recipient.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// AdminSender delivers a message to the fixed admin channel.
type AdminSender interface {
	SendToAdmin(ctx context.Context, body string) error
}
