package lock

import (
	"context"
	"sync"
	"time"
)

var (
	lockMap sync.Map
)

// WithDelay выполняет safeCode под ключевой блокировкой. Ожидание ключа
// ограничено wait; если ключ не получен - success=false, safeCode не
// вызывается. Используется для сериализации автоназначения по этапу:
// чтение счётчиков и запись назначения не должны чередоваться.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	isTimeout := time.After(wait)
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			break
		}
		select {
		case <-isTimeout:
			return false, nil
		case <-ctx.Done():
			return false, nil
		default:
			time.Sleep(50 * time.Millisecond)
		}
	}
	defer lockMap.Delete(key)
	return true, safeCode()
}
