package notify

import (
	"context"
	"fmt"
	"time"

	"facilitydesk/internal/domain/event"

	"github.com/go-resty/resty/v2"
)

// PushSender posts payloads to the push gateway over HTTP.
type PushSender struct {
	client   *resty.Client
	endpoint string
}

func NewPushSender(endpoint, serverKey string) *PushSender {
	c := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(2).
		SetHeader("Authorization", "key="+serverKey)
	return &PushSender{client: c, endpoint: endpoint}
}

type pushMessage struct {
	To           string        `json:"to"`
	Notification pushBody      `json:"notification"`
	Data         event.Payload `json:"data"`
	Priority     string        `json:"priority"`
}

type pushBody struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURL string `json:"image,omitempty"`
}

func (s *PushSender) Send(ctx context.Context, token string, p event.Payload) error {
	msg := pushMessage{
		To: token,
		Notification: pushBody{
			Title:    p.Title,
			Body:     p.Message,
			ImageURL: p.ImageURL,
		},
		Data:     p,
		Priority: "high",
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(msg).
		Post(s.endpoint)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("push gateway returned %s", resp.Status())
	}
	return nil
}
