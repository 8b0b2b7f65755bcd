package workers

import (
	"context"
	"sync"
	"time"

	"carhub_backend/internal/logger"
	"carhub_backend/internal/repositories"
)

// CleanupWorker удаляет неверифицированные записи по истечении TTL кода.
// Держит по одному отменяемому таймеру на email (таймер взводится при
// регистрации и снимается при верификации) и периодически подметает
// просроченные записи, пережившие рестарт процесса.
type CleanupWorker struct {
	userRepo      repositories.UserRepository
	ttl           time.Duration
	sweepInterval time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewCleanupWorker(userRepo repositories.UserRepository, ttl, sweepInterval time.Duration) *CleanupWorker {
	return &CleanupWorker{
		userRepo:      userRepo,
		ttl:           ttl,
		sweepInterval: sweepInterval,
		timers:        make(map[string]*time.Timer),
	}
}

// Schedule взводит одноразовый таймер удаления для email.
// Повторная регистрация того же email переустанавливает таймер.
func (w *CleanupWorker) Schedule(email string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[email]; ok {
		t.Stop()
	}

	w.timers[email] = time.AfterFunc(w.ttl, func() {
		w.expire(email)
	})
}

// Cancel снимает таймер; вызывается при успешной верификации
func (w *CleanupWorker) Cancel(email string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[email]; ok {
		t.Stop()
		delete(w.timers, email)
	}
}

// expire удаляет запись, если она все еще не верифицирована
func (w *CleanupWorker) expire(email string) {
	w.mu.Lock()
	delete(w.timers, email)
	w.mu.Unlock()

	deleted, err := w.userRepo.DeleteUnverified(email)
	if err != nil {
		logger.WithError(err).Error("cleanup: failed to delete unverified user", "email", email)
		return
	}
	if deleted {
		logger.Info("cleanup: removed unverified user", "email", email)
	}
}

// Start запускает периодическую подметку просроченных записей.
// Таймеры Schedule живут только в памяти процесса, подметка закрывает
// окно после рестарта.
func (w *CleanupWorker) Start(ctx context.Context) {
	go w.sweepLoop(ctx)
}

func (w *CleanupWorker) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep удаляет все неверифицированные записи с истекшим кодом
func (w *CleanupWorker) Sweep() {
	removed, err := w.userRepo.DeleteExpiredUnverified(time.Now().UnixMilli())
	if err != nil {
		logger.WithError(err).Error("cleanup sweep failed")
		return
	}
	if removed > 0 {
		logger.Info("cleanup sweep removed expired unverified users", "count", removed)
	}
}
