package push

import (
	"fmt"

	"boardTracker/internal/models/notification"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// Sender шлёт web-push на сохранённые подписки браузеров. Доставка
// best-effort: решение, глотать ли ошибку, остаётся за вызывающим.
type Sender struct {
	publicKey  string
	privateKey string
	subscriber string // mailto: для VAPID
}

func NewSender(publicKey, privateKey, subscriberEmail string) *Sender {
	return &Sender{
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: fmt.Sprintf("mailto:%s", subscriberEmail),
	}
}

func (s *Sender) Send(sub *notification.PushSubscription, payload []byte) error {
	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpush.SendNotification(payload, target, &webpush.Options{
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             60,
	})
	if err != nil {
		return fmt.Errorf("отправка push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("отправка push: статус %d", resp.StatusCode)
	}
	return nil
}
