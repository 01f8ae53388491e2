package logger

import (
	"io"
	"os"
	"sync"
)

// Broadcaster — io.Writer, дублирующий вывод в консоль и в каналы
// подписчиков (живые WebSocket подключения админки).
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[chan string]bool
}

var Instance = &Broadcaster{
	subscribers: make(map[chan string]bool),
}

func (b *Broadcaster) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)

	msg := string(p)
	b.mu.Lock()
	for ch := range b.subscribers {
		// Неблокирующая отправка: медленный клиент теряет строки, а не вешает лог
		select {
		case ch <- msg:
		default:
		}
	}
	b.mu.Unlock()

	return len(p), nil
}

// Subscribe — новый канал для получения логов.
func (b *Broadcaster) Subscribe() chan string {
	ch := make(chan string, 100)
	b.mu.Lock()
	b.subscribers[ch] = true
	b.mu.Unlock()
	return ch
}

// Unsubscribe — убирает канал из рассылки и закрывает его.
func (b *Broadcaster) Unsubscribe(ch chan string) {
	b.mu.Lock()
	delete(b.subscribers, ch)
	b.mu.Unlock()
	close(ch)
}

func GetWriter() io.Writer {
	return Instance
}
