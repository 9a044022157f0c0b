package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
)

// Scheduler периодические задачи сервиса
type Scheduler struct {
	cron   *cron.Cron
	logger Logger
}

// NewScheduler создает планировщик. Паника в задаче логируется и не роняет процесс
func NewScheduler(logger Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cronLogger{logger}))),
		logger: logger,
	}
}

// Register добавляет задачу по cron выражению
func (s *Scheduler) Register(name, spec string, job cron.Job) error {
	if _, err := s.cron.AddJob(spec, job); err != nil {
		return fmt.Errorf("register job %s (%q): %w", name, spec, err)
	}
	s.logger.Info("Job %s scheduled: %s", name, spec)
	return nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения запущенных задач
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out: %v", ctx.Err())
	}
}

// cronLogger адаптер логгера к cron.Logger
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info("cron: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
