package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"productivity-ledger/internal/config"
	"productivity-ledger/internal/notify"
	"productivity-ledger/internal/repository"
	"productivity-ledger/internal/service"
	"productivity-ledger/internal/store"
	"productivity-ledger/internal/sync"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	st := store.New(repository.NewRecordRepository(db))

	var remote sync.Remote
	var reconciler *sync.Reconciler
	if cfg.RedisURL != "" {
		redisRemote, err := sync.NewRedisRemote(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisRemote.Close()
		remote = redisRemote

		reconciler = sync.NewReconciler(st, remote)
		reconciler.OnStatus(func(status sync.Status) {
			log.Printf("sync: %s", status)
		})
		if cfg.UserID != "" {
			if err := reconciler.SignIn(ctx, cfg.UserID); err != nil {
				// Local state stays usable; sync resumes on the next write.
				log.Printf("sign-in: %v", err)
			}
		}
	}

	var identity service.Identity
	if reconciler != nil {
		identity = reconciler
	}
	eventSvc := service.NewEventService(st, identity, remote)
	reflectionSvc := service.NewReflectionService(st, eventSvc)
	reminderSvc := service.NewReminderService(st)

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		notifier, err = notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
	}

	scheduler := service.NewSchedulerService(time.Local)

	gate := &service.MinuteGate{}
	if _, err := scheduler.ScheduleInterval(cfg.ReminderInterval, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		for _, due := range reminderSvc.DueReminders(jobCtx, time.Now(), gate) {
			if err := notifier.Notify("Time to focus!", "Reminder: "+due.Title); err != nil {
				log.Printf("notify %s: %v", due.ID, err)
			}
		}
	}); err != nil {
		log.Fatalf("schedule reminders: %v", err)
	}

	if remote != nil {
		if _, err := scheduler.ScheduleInterval(cfg.EventSyncInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := eventSvc.SyncEvents(jobCtx); err != nil {
				log.Printf("event sync: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule event sync: %v", err)
		}
	}

	if cfg.ReflectionNudgeTime != "" {
		if _, err := scheduler.ScheduleDaily(cfg.ReflectionNudgeTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			agg := reflectionSvc.TodayAggregate(jobCtx, time.Now())
			body := fmt.Sprintf("Today: %d tasks done, %dm worked, %dm distracted. Close the day with a reflection.",
				agg.TasksDoneCount, int(agg.TaskTime), int(agg.DistractionTime))
			if err := notifier.Notify("Evening reflection", body); err != nil {
				log.Printf("notify reflection: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule reflection nudge: %v", err)
		}
	}

	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Productivity ledger started.")
	<-ctx.Done()
	log.Println("Shutdown complete.")
}
