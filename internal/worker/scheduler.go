package worker

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
)

// Job периодическая задача
type Job interface {
	Name() string
	Run(ctx context.Context)
}

// Scheduler запускает задачи по cron-расписанию.
// Запуск пропускается, если предыдущий запуск той же задачи еще не завершился
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	logger Logger
}

// NewScheduler создает планировщик
func NewScheduler(logger Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	cl := cronLogger{log: logger}
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)), cron.WithLogger(cl)),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// Add регистрирует задачу с расписанием spec (стандартный cron или @every)
func (s *Scheduler) Add(spec string, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() { job.Run(s.ctx) }); err != nil {
		return fmt.Errorf("schedule %s (%q): %w", job.Name(), spec, err)
	}
	s.logger.Info("Scheduler: job %s scheduled with %q", job.Name(), spec)
	return nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения запущенных задач, но не дольше ctx
func (s *Scheduler) Stop(ctx context.Context) {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Scheduler: stopped")
	case <-ctx.Done():
		s.logger.Warn("Scheduler: stop timed out, jobs still running")
	}
}

// cronLogger адаптер логгера для robfig/cron
type cronLogger struct {
	log Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	// запуски и пропуски задач не логируются
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("Scheduler: %s: %v %v", msg, err, keysAndValues)
}
