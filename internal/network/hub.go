package network

import (
	"sync"

	"skirmish-server/pkg/api"
)

// Broadcaster занимается только рассылкой снимков подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ClientID -> Личный канал
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для клиента (браузер или бот)
func (b *Broadcaster) Register(clientID string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[clientID]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[clientID] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[clientID]; ok {
		close(ch)
		delete(b.subscribers, clientID)
	}
}

// SendTo отправляет сообщение конкретному клиенту (Unicast)
func (b *Broadcaster) SendTo(clientID string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[clientID]; ok {
		select {
		case ch <- msg:
		default:
			// канал переполнен, клиент получит следующий снимок
		}
	}
}

// Broadcast отправляет всем подписчикам
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

func (b *Broadcaster) HasSubscriber(clientID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[clientID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
