package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event: любое событие в системе.
type Event interface {
	Name() string
}

// Listener: обработчик событий.
type Listener func(ctx context.Context, event Event) error

// Publisher: сервисам нужна только публикация.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Bus: внутрипроцессная шина событий, обработчики вызываются асинхронно.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	inflight  sync.WaitGroup
	timeout   time.Duration
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		timeout:   time.Minute,
		logger:    logger,
	}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish не ждёт обработчиков. Контекст запроса не передаётся: он закончится раньше.
func (b *Bus) Publish(_ context.Context, event Event) {
	b.mu.RLock()
	listeners := append([]Listener(nil), b.listeners[event.Name()]...)
	b.mu.RUnlock()

	for _, listener := range listeners {
		b.inflight.Add(1)
		go func(l Listener) {
			defer b.inflight.Done()
			defer func() {
				if p := recover(); p != nil {
					b.logger.Error("Паника в обработчике события", zap.String("event", event.Name()), zap.Any("panic", p))
				}
			}()

			ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
			defer cancel()

			if err := l(ctx, event); err != nil {
				b.logger.Error("Ошибка в обработчике события",
					zap.String("event", event.Name()),
					zap.Error(err),
				)
			}
		}(listener)
	}
}

// Wait дожидается всех запущенных обработчиков. Используется при остановке сервера и в тестах.
func (b *Bus) Wait() {
	b.inflight.Wait()
}
