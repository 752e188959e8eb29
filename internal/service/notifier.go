package service

import (
	"sync"
	"time"

	"pharmapos/internal/domain"
)

// DefaultNotificationTTL время жизни уведомления до автоочистки
const DefaultNotificationTTL = 3500 * time.Millisecond

// Notifier единственный слот текущего уведомления с автоочисткой.
// Новое уведомление вытесняет предыдущее и отменяет его таймер.
// На бизнес-состояние не влияет, чисто пользовательская обратная связь.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	seq     uint64
	current *domain.Notification
	timer   *time.Timer
}

func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Notifier{ttl: ttl}
}

// Notify публикует уведомление и взводит таймер автоочистки
func (n *Notifier) Notify(kind domain.NotificationKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	gen := n.seq
	n.current = &domain.Notification{Kind: kind, Message: message}
	n.timer = time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		// очищаем только если слот не перезаписан более новым уведомлением
		if n.seq == gen {
			n.current = nil
			n.timer = nil
		}
	})
}

func (n *Notifier) Success(message string) { n.Notify(domain.NotifySuccess, message) }
func (n *Notifier) Error(message string)   { n.Notify(domain.NotifyError, message) }
func (n *Notifier) Info(message string)    { n.Notify(domain.NotifyInfo, message) }

// Current возвращает копию текущего уведомления либо nil
func (n *Notifier) Current() *domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	cp := *n.current
	return &cp
}
