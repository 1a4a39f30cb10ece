package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/techrelay/internal/application"
	"github.com/bnema/techrelay/internal/domain"
	"github.com/bnema/techrelay/internal/logging"
	"github.com/spf13/viper"
)

const (
	configName = "relay"
	configDir  = ".techrelay"
	envPrefix  = "RELAY"

	keyRoutes        = "routes"
	keyContacts      = "contacts"
	keySLATick       = "sla.tick"
	keySLAStep       = "sla.step"
	keySLAMax        = "sla.max_reminders"
	keyTransportKind = "transport.kind"
	keyKafkaBrokers  = "transport.kafka.brokers"
	keyKafkaEvents   = "transport.kafka.events_topic"
	keyKafkaCommands = "transport.kafka.commands_topic"
	keyKafkaGroup    = "transport.kafka.group_id"
	keyLogLevel      = "log.level"
	keyLogFormat     = "log.format"
	keyMetricsAddr   = "metrics.addr"

	transportStdio = "stdio"
	transportKafka = "kafka"
)

func newConfig(configFile string) (*viper.Viper, error) {
	cfg := viper.New()
	cfg.SetDefault(keySLATick, application.DefaultSweepInterval)
	cfg.SetDefault(keySLAStep, domain.DefaultReminderStep)
	cfg.SetDefault(keySLAMax, domain.DefaultMaxReminders)
	cfg.SetDefault(keyTransportKind, transportStdio)
	cfg.SetDefault(keyKafkaEvents, "techrelay.events")
	cfg.SetDefault(keyKafkaCommands, "techrelay.commands")
	cfg.SetDefault(keyLogLevel, "info")
	cfg.SetDefault(keyLogFormat, logging.FormatConsole)

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if configFile != "" {
		cfg.SetConfigFile(configFile)
	} else {
		cfg.SetConfigName(configName)
		cfg.SetConfigType("toml")
		if homeDir, err := os.UserHomeDir(); err == nil {
			cfg.AddConfigPath(filepath.Join(homeDir, configDir))
		}
		cfg.AddConfigPath(".")
	}

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return cfg, nil
}

type routeConfig struct {
	Source      string `mapstructure:"source"`
	Destination string `mapstructure:"destination"`
}

type contactConfig struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// Conversation ids contain dots, so routes and contacts are arrays of
// tables rather than keyed tables.
func routingTable(cfg *viper.Viper) (application.RoutingTable, error) {
	var routes []routeConfig
	if err := cfg.UnmarshalKey(keyRoutes, &routes); err != nil {
		return application.RoutingTable{}, fmt.Errorf("decode %s: %w", keyRoutes, err)
	}

	mapping := make(map[string]string, len(routes))
	for _, route := range routes {
		if _, dup := mapping[route.Source]; dup {
			return application.RoutingTable{}, fmt.Errorf("route source %q configured twice", route.Source)
		}
		mapping[route.Source] = route.Destination
	}
	return application.NewRoutingTable(mapping)
}

func contactNames(cfg *viper.Viper) (map[string]string, error) {
	var contacts []contactConfig
	if err := cfg.UnmarshalKey(keyContacts, &contacts); err != nil {
		return nil, fmt.Errorf("decode %s: %w", keyContacts, err)
	}

	names := make(map[string]string, len(contacts))
	for _, contact := range contacts {
		names[contact.ID] = contact.Name
	}
	return names, nil
}

func slaPolicy(cfg *viper.Viper) (domain.SLAPolicy, time.Duration, error) {
	policy := domain.SLAPolicy{
		Step:         cfg.GetDuration(keySLAStep),
		MaxReminders: cfg.GetInt(keySLAMax),
	}
	tick := cfg.GetDuration(keySLATick)
	if policy.Step <= 0 || tick <= 0 {
		return domain.SLAPolicy{}, 0, fmt.Errorf("%s and %s must be positive durations", keySLAStep, keySLATick)
	}
	if policy.MaxReminders < 0 {
		return domain.SLAPolicy{}, 0, fmt.Errorf("%s must not be negative", keySLAMax)
	}
	return policy, tick, nil
}

// appState is filled once flags are parsed.
type appState struct {
	configFile string
	app        *app
}

func (s *appState) load() error {
	if s.app != nil {
		return nil
	}
	cfg, err := newConfig(s.configFile)
	if err != nil {
		return err
	}
	a, err := wireApp(cfg)
	if err != nil {
		return err
	}
	s.app = a
	return nil
}
