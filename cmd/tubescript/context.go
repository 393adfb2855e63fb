package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"tubescript/internal/auth"
	"tubescript/internal/config"
	"tubescript/internal/fetcher"
	"tubescript/internal/logging"
)

type commandContext struct {
	configFlag   *string
	strategyFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	sessionOnce sync.Once
	session     *auth.Session
	sessionErr  error
}

func newCommandContext(configFlag, strategyFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		strategyFlag: strategyFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if strategy := c.strategy(); strategy != "" {
			if !slices.Contains(config.Strategies, strategy) {
				c.configErr = fmt.Errorf("--strategy must be one of %s, got %q", strings.Join(config.Strategies, ", "), strategy)
				return
			}
			// the flag wins over both the file and TUBESCRIPT_STRATEGY
			if err := os.Setenv("TUBESCRIPT_STRATEGY", strategy); err != nil {
				c.configErr = err
				return
			}
		}
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) strategy() string {
	if c.strategyFlag == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*c.strategyFlag))
}

// logger builds a logger for the current command. Commands that own stdout
// and stderr for a protocol pass console=false.
func (c *commandContext) logger(console bool) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, console)
}

// authSession returns the process-wide OAuth session.
func (c *commandContext) authSession(logger *slog.Logger) (*auth.Session, error) {
	c.sessionOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.sessionErr = err
			return
		}
		c.session, c.sessionErr = auth.NewSessionFromConfig(cfg, logger)
	})
	return c.session, c.sessionErr
}

// transcriptService builds the fetcher for the configured strategy, sharing
// the command's OAuth session with the api strategy.
func (c *commandContext) transcriptService(logger *slog.Logger) (*fetcher.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	opts := fetcher.Options{}
	if cfg.Fetch.Strategy == config.StrategyAPI {
		session, err := c.authSession(logger)
		if err != nil {
			return nil, err
		}
		opts.Session = session
	}
	return fetcher.NewFromConfig(cfg, logger, opts)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
