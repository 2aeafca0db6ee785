package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Cliente da Evolution API (WhatsApp). Só envia texto; falha nunca
// propaga para o fluxo de agendamento.
type WhatsAppClient struct {
	baseURL  string
	apiKey   string
	instance string
	http     *http.Client
}

func NewWhatsAppClient(baseURL, apiKey, instance string) *WhatsAppClient {
	return &WhatsAppClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		instance: instance,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

func (c *WhatsAppClient) Send(ctx context.Context, phone string, message string) error {
	payload := sendTextRequest{
		Number: FormatPhone(phone),
		Text:   message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/message/sendText/%s", c.baseURL, c.instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("evolution api status %d: %s", resp.StatusCode, detail)
	}

	return nil
}

// FormatPhone normaliza para o padrão internacional do WhatsApp:
// 11999999999 → 5511999999999@s.whatsapp.net
func FormatPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	number := digits.String()
	if !strings.HasPrefix(number, "55") {
		number = "55" + number
	}

	return number + "@s.whatsapp.net"
}
