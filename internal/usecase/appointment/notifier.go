package appointment

// Notifier queues fire-and-forget notifications after a successful
// ledger write. Implemented by notify.Dispatcher.
type Notifier interface {
	SendWhatsApp(to, body string)
	SendTelegram(body string)
}
