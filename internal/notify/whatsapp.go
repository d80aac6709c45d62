package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/romacabello/salon-scheduler/internal/phone"
)

// WhatsAppBridge talks to the local bridge process that fronts the
// browser-automation WhatsApp session. The bridge exposes a single
// endpoint: POST {base}/send {"to": ..., "body": ...}.
type WhatsAppBridge struct {
	baseURL string
	client  *http.Client
}

func NewWhatsAppBridge(baseURL string) *WhatsAppBridge {
	return &WhatsAppBridge{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether a bridge URL was provided. An unconfigured
// bridge silently drops messages, matching the rest of the notifier path.
func (w *WhatsAppBridge) Configured() bool {
	return w.baseURL != ""
}

func (w *WhatsAppBridge) Send(ctx context.Context, to, body string) error {
	if !w.Configured() {
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"to":   phone.Normalize(to),
		"body": body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+"/send", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("whatsapp bridge returned %d", resp.StatusCode)
	}
	return nil
}
