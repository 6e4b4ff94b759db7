package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"hrpayroll/backend/internal/commands"
	"hrpayroll/backend/internal/pkg/cascade"
	"hrpayroll/backend/internal/pkg/config"
	"hrpayroll/backend/internal/pkg/dualwrite"
	"hrpayroll/backend/internal/pkg/logger"
	"hrpayroll/backend/internal/pkg/notify"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
	"hrpayroll/backend/internal/router"
)

const service = "hr-payroll"

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, config.ErrHelp) {
			return
		}
		log := zerolog.New(os.Stderr).With().Timestamp().Logger()
		log.Fatal().Err(err).Msg("startup")
	}
}

func run(args []string) error {
	migrate, args := migrateFlag(args)

	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	logData, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logData.Close()
	log := logData.Logger

	log.Info().Str("config", cfg.String()).Msg("starting")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	primary, err := open(ctx, cfg, "primary", cfg.PrimaryBackend())
	if err != nil {
		return err
	}
	defer primary.Close()

	secondary, err := open(ctx, cfg, "secondary", cfg.SecondaryBackend())
	if err != nil {
		return err
	}
	defer secondary.Close()

	if migrate {
		if err := commands.Migrate(ctx, log, primary, secondary); err != nil {
			return err
		}
	}

	rules, err := cascade.Load()
	if err != nil {
		return err
	}

	notifier, err := newNotifier(cfg, log)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)

	r := router.NewRouter(log, primary, secondary,
		dualwrite.NewCoordinator(primary, secondary, log, notifier), rules, cfg)
	r.Init()

	log.Info().Str("addr", cfg.Web.Addr).Msg("listening")
	return errors.Wrap(r.Run(), "serving")
}

// migrateFlag pulls --migrate out of args before the config parser sees them.
func migrateFlag(args []string) (bool, []string) {
	migrate := false
	rest := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--migrate" || a == "-migrate" {
			migrate = true
			continue
		}
		rest = append(rest, a)
	}
	return migrate, rest
}

func newLogger(cfg config.Config) (*logger.LogData, error) {
	build := logger.New().Level(cfg.Log.Level).Service(service)
	if cfg.Log.Path != "" {
		build = build.FromPath(cfg.Log.Path)
	}
	return build.Make()
}

func open(ctx context.Context, cfg config.Config, name string, b config.Backend) (*sqldb.Database, error) {
	opts, err := cfg.Options(name, b)
	if err != nil {
		return nil, err
	}
	return sqldb.Open(ctx, opts)
}

func newNotifier(cfg config.Config, log zerolog.Logger) (notify.Notifier, error) {
	if cfg.Notify.BotToken == "" {
		return notify.Nop{}, nil
	}
	return notify.NewTelegram(cfg.Notify.BotToken, cfg.Notify.Chats, log)
}
