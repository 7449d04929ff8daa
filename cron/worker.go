package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonbook/config"
	"salonbook/models"
	"salonbook/services/notification"
	"salonbook/services/tasks"
	"salonbook/utils"

	"github.com/hibiken/asynq"
	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// AlertSource yields the current retouch alerts.
type AlertSource interface {
	RetouchAlerts(threshold int, bestOnly bool) []models.RetouchAlert
}

// ClientLookup resolves a client for its device token.
type ClientLookup interface {
	Get(id string) (models.Client, error)
}

// Enqueuer is the subset of *asynq.Client the scan needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// RetouchWorker scans for due retouches and pushes a reminder to each client.
type RetouchWorker struct {
	Alerts    AlertSource
	Clients   ClientLookup
	Queue     Enqueuer
	Notifier  notification.Notifier
	Threshold int
	Logger    *zap.Logger
}

// Scan enqueues one reminder per client (their most urgent alert) and
// returns how many were queued.
func (w *RetouchWorker) Scan(ctx context.Context) (int, error) {
	alerts := w.Alerts.RetouchAlerts(w.Threshold, true)
	queued := 0
	for _, a := range alerts {
		payload := models.RetouchReminderPayload{
			ClientID:     a.ClientID,
			ServiceID:    a.ServiceID,
			ServiceName:  a.ServiceName,
			DueDate:      a.DueDate.Format(models.DateLayout),
			DaysUntilDue: a.DaysUntilDue,
		}
		task, opts, err := tasks.NewRetouchReminderTask(payload)
		if err != nil {
			return queued, fmt.Errorf("build reminder for %s: %w", a.ClientID, err)
		}
		if _, err := w.Queue.EnqueueContext(ctx, task, opts...); err != nil {
			if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
				continue
			}
			return queued, fmt.Errorf("enqueue reminder for %s: %w", a.ClientID, err)
		}
		queued++
	}
	w.Logger.Info("retouch scan finished", zap.Int("alerts", len(alerts)), zap.Int("queued", queued))
	return queued, nil
}

// HandleReminder is the asynq handler for tasks.TypeRetouchRemind.
func (w *RetouchWorker) HandleReminder(ctx context.Context, task *asynq.Task) error {
	p, err := tasks.DecodeRetouchReminder(task)
	if err != nil {
		w.Logger.Error("invalid reminder payload", zap.Error(err))
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	client, err := w.Clients.Get(p.ClientID)
	if err != nil {
		w.Logger.Warn("reminder for unknown client", zap.String("clientId", p.ClientID))
		return nil
	}
	if client.DeviceToken == "" {
		w.Logger.Debug("client has no device token", zap.String("clientId", p.ClientID))
		return nil
	}

	title, body := notification.RetouchMessage(p)
	data := map[string]string{
		"type":      "retouch",
		"clientId":  p.ClientID,
		"serviceId": p.ServiceID,
		"dueDate":   p.DueDate,
	}
	if err := w.Notifier.Send(ctx, client.DeviceToken, title, body, data); err != nil {
		return fmt.Errorf("notify %s: %w", p.ClientID, err)
	}
	return nil
}

// Start runs the asynq server and schedules Scan on RETOUCH_SCAN_CRON. The
// returned function stops both.
func (w *RetouchWorker) Start() (func(), error) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{"default": 1},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeRetouchRemind, w.HandleReminder)
	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("start reminder worker: %w", err)
	}

	scheduler := robfig.New(robfig.WithLocation(time.Local))
	_, err := scheduler.AddFunc(config.AppConfig.RetouchScanCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := w.Scan(ctx); err != nil {
			w.Logger.Error("retouch scan failed", zap.Error(err))
		}
	})
	if err != nil {
		srv.Shutdown()
		return nil, fmt.Errorf("invalid RETOUCH_SCAN_CRON %q: %w", config.AppConfig.RetouchScanCron, err)
	}
	scheduler.Start()
	w.Logger.Info("retouch worker started", zap.String("schedule", config.AppConfig.RetouchScanCron))

	return func() {
		<-scheduler.Stop().Done()
		srv.Shutdown()
	}, nil
}

// NewQueueClient opens the asynq client used by Scan.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}

// NewNotifier picks FCM when credentials are configured and falls back to
// logging otherwise.
func NewNotifier(ctx context.Context) notification.Notifier {
	logger := utils.GetLogger()
	if path := config.AppConfig.FirebaseCredentialsFile; path != "" {
		n, err := notification.NewFCMNotifier(ctx, path)
		if err == nil {
			return n
		}
		logger.Error("firebase init failed, logging pushes instead", zap.Error(err))
	}
	return notification.LogNotifier{Logger: logger}
}
