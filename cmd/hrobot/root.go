package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/elasticjava/community.hrobot/config"
	"github.com/elasticjava/community.hrobot/robot"
	"github.com/elasticjava/community.hrobot/version"
)

type app struct {
	cfgPath string
	verbose bool

	cfg    config.Robot
	log    *zap.Logger
	client *robot.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "hrobot",
		Short:         "Manage dedicated servers through the Hetzner Robot webservice",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// version needs no credentials.
			if cmd.Name() == "version" {
				return nil
			}
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "config file (default: HROBOT_* environment)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every webservice request")

	rootCmd.AddCommand(
		newServersCmd(a),
		newServerCmd(a),
		newResetCmd(a),
		newFirewallCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) init() error {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	var err error
	if a.cfgPath != "" {
		var cfg *config.Config[config.Robot]
		cfg, err = config.LoadRobot(a.cfgPath)
		if err == nil {
			a.cfg = cfg.Get()
		}
	} else {
		a.cfg, err = config.FromEnv()
	}
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	creds := a.cfg.Credentials()
	if creds.User == "" || creds.Password == "" {
		return fmt.Errorf("webservice credentials missing: set HROBOT_USER and HROBOT_PASSWORD or use --config")
	}

	if a.verbose {
		a.log, err = zap.NewDevelopment()
	} else {
		a.log, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	a.client, err = robot.New(
		robot.WithBaseURL(a.cfg.BaseURL),
		robot.WithCredentials(creds.User, creds.Password),
		robot.WithTimeout(a.cfg.Timeout),
		robot.WithUserAgent(version.UserAgent()),
		robot.WithTransport(robot.NewTransport(robot.TransportConfig{
			// Short-lived CLI process: small keep-alive pool, header
			// waits bounded by the configured request timeout.
			ResponseHeaderTimeout: a.cfg.Timeout,
			MaxIdleConnsPerHost:   2,
		})),
	)
	if err != nil {
		return fmt.Errorf("building webservice client: %w", err)
	}

	if a.cfg.RateLimit > 0 {
		a.client.WithRateLimiter(rate.NewLimiter(rate.Limit(a.cfg.RateLimit), 1))
	}
	a.client.WithHooks(nil, []robot.AfterHook{a.logRequest})
	return nil
}

func (a *app) logRequest(req *http.Request, resp *http.Response, err error, dur time.Duration, attempt int) {
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Duration("duration", dur),
		zap.Int("attempt", attempt),
	}
	if resp != nil {
		fields = append(fields, zap.Int("status", resp.StatusCode))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
		a.log.Warn("webservice request failed", fields...)
		return
	}
	a.log.Debug("webservice request", fields...)
}

// renderError turns client failures into actionable one-liners, keeping
// the provider's own diagnosis when there is one.
func renderError(err error) error {
	if re, ok := robot.AsError(err); ok {
		return fmt.Errorf("%s", re.Error())
	}
	return err
}
