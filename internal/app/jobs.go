package app

import (
	"time"

	"github.com/perronifitwear/backoffice/internal/adminapi"
	"github.com/perronifitwear/backoffice/internal/domain"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	// Bridge catalog saves to the webhook. Async one-shot delivery, the
	// subscriber logs the outcome and never blocks the save path.
	if err := a.bus.SubscribeAsync(adminapi.EventProductSaved,
		adminapi.NotifySaved(a.notifier), false); err != nil {
		zap.S().Errorf("subscribe save events error %s", err.Error())
	}

	var err error
	_, err = a.sched.AddFunc("@every 10m", func() {
		a.SchedStockAlertTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedStockAlertTask sweeps the catalog and logs stock alerts, the
// dashboard's warning cards in log form.
func (a *Application) SchedStockAlertTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	list, err := a.store.LoadAll()
	if err != nil {
		zap.L().Warn("stock sweep skipped, catalog unavailable", zap.Error(err))
		return
	}

	var out, low int
	for _, p := range list {
		switch p.StockStatusAt(a.appConfig.Catalog.LowStockThreshold) {
		case domain.StockOut:
			out++
		case domain.StockLow:
			low++
		}
	}

	if out > 0 || low > 0 {
		zap.L().Warn("stock alert",
			zap.Int("out_of_stock", out),
			zap.Int("low_stock", low),
			zap.Int("total", len(list)))
	}
}
