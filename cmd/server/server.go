package server

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/buysimply/buysimply/auth"
	"github.com/buysimply/buysimply/auth/revocation"
	"github.com/buysimply/buysimply/auth/token"
	"github.com/buysimply/buysimply/config"
	buysimplyhttp "github.com/buysimply/buysimply/http"
	"github.com/buysimply/buysimply/listener/api"
	"github.com/buysimply/buysimply/loan"
	log "github.com/buysimply/buysimply/logger"
	"github.com/buysimply/buysimply/route"
	"github.com/buysimply/buysimply/seed"
)

var (
	configPath string

	ServerCmd = &cobra.Command{
		Use:   "server",
		Short: "This command starts a Buysimply server that responds to API requests",
		Long: `
Usage: buysimply server [options]

  This command starts a Buysimply server that responds to API requests.
  Start a server with a configuration file:

      $ buysimply server --config=/etc/buysimply/config.hcl
`,
		RunE: run,
	}
)

func init() {
	ServerCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (e.g., path/to/buysimply.hcl)")
}

func run(cmd *cobra.Command, args []string) error {
	if configPath == "" {
		return fmt.Errorf("config file path is required. Use -c or --config flag")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", configPath)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := buildLogger(cfg)
	defer logger.Close()

	ttl, err := cfg.TokenTTL()
	if err != nil {
		return err
	}
	codec, err := token.NewCodec(cfg.Auth.JWTSecret, ttl)
	if err != nil {
		return fmt.Errorf("failed to construct token codec: %w", err)
	}

	verifier, err := token.NewVerifyingCache(codec, logger.WithSubsystem("token"), nil)
	if err != nil {
		return fmt.Errorf("failed to construct principal cache: %w", err)
	}
	defer verifier.Close()

	revocations := revocation.NewStore()
	routes := route.NewRegistry()

	var loansPath, staffsPath string
	if cfg.Data != nil {
		loansPath = cfg.Data.LoansFile
		staffsPath = cfg.Data.StaffsFile
	}

	staffData, err := seed.Staffs(staffsPath)
	if err != nil {
		return fmt.Errorf("failed to read staff records: %w", err)
	}
	authService, err := auth.NewService(staffData, codec, revocations, logger.WithSubsystem("auth"))
	if err != nil {
		return err
	}

	loanData, err := seed.Loans(loansPath)
	if err != nil {
		return fmt.Errorf("failed to read loan records: %w", err)
	}
	loanService, err := loan.NewService(loanData, logger.WithSubsystem("loan"))
	if err != nil {
		return err
	}

	handler := buysimplyhttp.Handler(&buysimplyhttp.HandlerProperties{
		AuthService: authService,
		LoanService: loanService,
		Verifier:    verifier,
		Revocations: revocations,
		Routes:      routes,
		Logger:      logger.WithSubsystem("http"),
		Environment: cfg.Environment,
		Throttle:    buildThrottle(cfg),
	})

	apiListener, err := api.NewApiListener(api.ApiListenerConfig{
		Logger:  logger.WithSubsystem("listener"),
		Address: cfg.ListenAddress(),
	}, handler)
	if err != nil {
		return fmt.Errorf("failed to construct the api listener: %w", err)
	}

	logger.Info("buysimply server configured",
		log.String("address", cfg.ListenAddress()),
		log.String("environment", cfg.Environment),
		log.Duration("token_ttl", codec.TTL()))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return apiListener.Start(ctx)
}

func buildLogger(cfg *config.Config) log.Logger {
	logConfig := log.DefaultConfig()
	if cfg.IsProduction() {
		logConfig = log.ProductionConfig("buysimply")
	}
	if cfg.LogLevel != "" {
		logConfig.Level = log.ParseLogLevel(cfg.LogLevel)
	}
	if cfg.LogFormat != "" {
		logConfig.Format = log.ParseOutputFormat(cfg.LogFormat)
	}
	if cfg.LogFile != "" {
		if logConfig.FileConfig == nil {
			logConfig.FileConfig = &log.FileConfig{
				MaxSize:    100,
				MaxAge:     30,
				MaxBackups: 10,
			}
		}
		logConfig.FileConfig.Filename = cfg.LogFile
	}
	logConfig.Environment = cfg.Environment
	if logConfig.Environment == "" {
		logConfig.Environment = "development"
	}

	return log.NewZerologLogger(logConfig)
}

func buildThrottle(cfg *config.Config) *buysimplyhttp.ThrottleConfig {
	throttle := buysimplyhttp.DefaultThrottleConfig()
	if cfg.Throttle == nil {
		return throttle
	}
	if cfg.Throttle.Limit > 0 {
		throttle.Limit = cfg.Throttle.Limit
	}
	if window, _ := cfg.ThrottleWindow(); window > 0 {
		throttle.Window = window
	}
	return throttle
}
