package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/romacabello/salon-scheduler/internal/metrics"
)

type channel string

const (
	channelWhatsApp channel = "whatsapp"
	channelTelegram channel = "telegram"
)

type outbound struct {
	channel channel
	to      string
	body    string
}

// Dispatcher queues outbound notifications and delivers them from a
// background worker, so a slow or dead gateway cannot stall a booking.
// The queue is bounded; overflow is dropped with a log line.
type Dispatcher struct {
	whatsapp Sender
	telegram AdminSender
	log      *zap.Logger
	queue    chan outbound
}

func NewDispatcher(whatsapp Sender, telegram AdminSender, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		whatsapp: whatsapp,
		telegram: telegram,
		log:      log,
		queue:    make(chan outbound, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		err := d.deliver(ctx, msg)
		cancel()

		if err != nil {
			metrics.NotificationsSent.WithLabelValues(string(msg.channel), "error").Inc()
			d.log.Warn("notification delivery failed",
				zap.String("channel", string(msg.channel)),
				zap.Error(err),
			)
			continue
		}
		metrics.NotificationsSent.WithLabelValues(string(msg.channel), "ok").Inc()
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg outbound) error {
	switch msg.channel {
	case channelTelegram:
		return d.telegram.SendToAdmin(ctx, msg.body)
	default:
		return d.whatsapp.Send(ctx, msg.to, msg.body)
	}
}

func (d *Dispatcher) enqueue(msg outbound) {
	select {
	case d.queue <- msg:
	default:
		d.log.Warn("notification queue full, dropping message",
			zap.String("channel", string(msg.channel)),
		)
	}
}

// SendWhatsApp queues a WhatsApp message for the given phone number.
func (d *Dispatcher) SendWhatsApp(to, body string) {
	d.enqueue(outbound{channel: channelWhatsApp, to: to, body: body})
}

// SendTelegram queues a message to the admin Telegram chat.
func (d *Dispatcher) SendTelegram(body string) {
	d.enqueue(outbound{channel: channelTelegram, body: body})
}
