package app

import (
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/perronifitwear/backoffice/config"
	"github.com/perronifitwear/backoffice/internal/catalog"
	"github.com/perronifitwear/backoffice/internal/notify"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Application struct {
	appConfig *config.AppConfig
	kv        *catalog.BoltKV
	store     *catalog.Store
	notifier  *notify.Notifier
	bus       EventBus.Bus
	sched     *cron.Cron
	node      *snowflake.Node
}

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() *catalog.Store {
	return a.store
}

// OverrideStore replaces the application's catalog store (used in tests).
func (a *Application) OverrideStore(store *catalog.Store) {
	a.store = store
}

func (a *Application) Notifier() *notify.Notifier {
	return a.notifier
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

func (a *Application) Node() *snowflake.Node {
	return a.node
}

func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.GetLogDir(), cfg.Logger.Filename),
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	if err := os.MkdirAll(cfg.GetDataDir(), 0o755); err != nil {
		return err
	}

	// Open the catalog blob store
	kv, err := catalog.NewBoltKV(filepath.Join(cfg.GetDataDir(), "backoffice.db"))
	if err != nil {
		return err
	}
	a.kv = kv
	a.store = catalog.NewStore(kv)
	zap.S().Infof("catalog store opened, workdir: %s", cfg.System.Workdir)

	a.node, err = snowflake.NewNode(1)
	if err != nil {
		return err
	}

	// The webhook endpoint honors the persisted user override over the
	// configured default.
	endpoint := cfg.Webhook.URL
	if saved, err := a.store.WebhookURL(); err == nil && saved != "" {
		endpoint = saved
	}
	a.notifier = notify.New(endpoint, cfg.Webhook.Source,
		time.Duration(cfg.Webhook.Timeout)*time.Second, cfg.Webhook.Opaque)

	a.bus = EventBus.New()

	a.checkSeed()
	a.initJob()
	return nil
}

// checkSeed makes the first catalog read happen at startup, so an empty
// store gets its example products before the first request arrives.
func (a *Application) checkSeed() {
	list, err := a.store.LoadAll()
	if err != nil {
		zap.L().Warn("catalog load failed during startup check", zap.Error(err))
		return
	}
	zap.L().Info("catalog ready", zap.Int("products", len(list)))
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.kv != nil {
		_ = a.kv.Close()
	}
	_ = zap.L().Sync()
}
