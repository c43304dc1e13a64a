package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/msutyak/careconnect/config"
	bookingRepo "github.com/msutyak/careconnect/database/repository/booking"
	recipientRepo "github.com/msutyak/careconnect/database/repository/recipient"
	"github.com/msutyak/careconnect/models"
	"github.com/msutyak/careconnect/services/notification"
	"github.com/msutyak/careconnect/services/tasks"
	"github.com/msutyak/careconnect/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker bundles the asynq consumer with the scheduler that fires the daily
// reminder sweep.
type Worker struct {
	srv   *asynq.Server
	sched *asynq.Scheduler
}

// Shutdown stops the scheduler and drains in-flight tasks.
func (w *Worker) Shutdown() {
	w.sched.Shutdown()
	w.srv.Shutdown()
}

// StartWorker launches the background processing loops in their own
// goroutines and returns immediately; call Shutdown on the returned Worker
// to stop them.
func StartWorker(notifSvc notification.NotificationService, bookings bookingRepo.BookingRepository, recipients recipientRepo.RecipientRepository) *Worker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{"default": 1},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePushNotification, handlePushTask(notifSvc))
	mux.HandleFunc(tasks.TypeBookingReminder, handleReminderTask(notifSvc))
	mux.HandleFunc(tasks.TypeReminderSweep, handleReminderSweep(notifSvc, bookings, recipients))

	// Morning sweep backstops each day's confirmed bookings: a booking whose
	// reminder enqueue was lost still gets one. Task-id dedupe keeps the
	// sweep from double-reminding bookings the webhook already covered.
	sched := asynq.NewScheduler(redisOpt, nil)
	if _, err := sched.Register("0 6 * * *", tasks.NewReminderSweepTask()); err != nil {
		utils.GetLogger().Fatal("reminder sweep not registered", zap.Error(err))
	}

	go func() {
		utils.GetLogger().Info("task worker starting")
		if err := srv.Run(mux); err != nil {
			utils.GetLogger().Fatal("task worker failed", zap.Error(err))
		}
	}()
	go func() {
		if err := sched.Run(); err != nil {
			utils.GetLogger().Fatal("task scheduler failed", zap.Error(err))
		}
	}()
	return &Worker{srv: srv, sched: sched}
}

func handlePushTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.PushPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			// A malformed payload never becomes valid; don't retry it.
			utils.GetLogger().Error("invalid push payload", zap.Error(err))
			return nil
		}
		return notifSvc.SendPush(ctx, p.ProfileID, p.Title, p.Body, p.Data)
	}
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid reminder payload", zap.Error(err))
			return nil
		}

		notif := models.Notification{
			RecipientID: p.ProfileID,
			Type:        models.NotifReminder,
			Title:       "Upcoming Booking",
			Body:        fmt.Sprintf("Reminder: your booking starts at %s on %s.", p.StartTime, p.Date),
			Data:        map[string]string{"booking_id": p.BookingID},
		}
		return notifSvc.Create(ctx, notif)
	}
}

// handleReminderSweep schedules reminders for every booking confirmed for
// the current day. Per-booking failures are logged and skipped so one bad
// row cannot starve the rest of the day's reminders.
func handleReminderSweep(notifSvc notification.NotificationService, bookings bookingRepo.BookingRepository, recipients recipientRepo.RecipientRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		date := time.Now().Format("2006-01-02")
		confirmed, err := bookings.ListConfirmedOnDate(ctx, date)
		if err != nil {
			return fmt.Errorf("list confirmed bookings for %s: %w", date, err)
		}

		for _, b := range confirmed {
			recipient, err := recipients.GetByID(ctx, b.RecipientID)
			if err != nil {
				utils.GetLogger().Warn("reminder sweep: recipient lookup failed",
					zap.String("booking", b.ID), zap.Error(err))
				continue
			}
			if err := notifSvc.ScheduleBookingReminder(ctx, b, recipient.ProfileID); err != nil {
				utils.GetLogger().Warn("reminder sweep: reminder not scheduled",
					zap.String("booking", b.ID), zap.Error(err))
			}
		}
		return nil
	}
}
