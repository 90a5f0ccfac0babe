package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the typed application configuration.
type Config struct {
	Port     string `mapstructure:"port"`
	Timezone string `mapstructure:"timezone"`

	Log struct {
		Level string `mapstructure:"level"` // debug|info|warn|error
	} `mapstructure:"log"`

	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`

	Weather WeatherConfig `mapstructure:"weather"`
	Mirror  MirrorConfig  `mapstructure:"mirror"`
	MQTT    MQTTConfig    `mapstructure:"mqtt"`

	Simulator struct {
		Enabled bool          `mapstructure:"enabled"`
		Tick    time.Duration `mapstructure:"tick"`
	} `mapstructure:"simulator"`
}

type WeatherConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Lat     float64       `mapstructure:"lat"`
	Lon     float64       `mapstructure:"lon"`
	Lang    string        `mapstructure:"lang"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type MirrorConfig struct {
	Workers   int           `mapstructure:"workers"`
	QueueSize int           `mapstructure:"queue_size"`
	Timeout   time.Duration `mapstructure:"timeout"`

	// LocalLog records pushed commands in the control_commands table.
	LocalLog bool `mapstructure:"local_log"`

	Firebase struct {
		Enabled    bool   `mapstructure:"enabled"`
		URL        string `mapstructure:"url"`
		SensorPath string `mapstructure:"sensor_path"`
		CmdsPath   string `mapstructure:"cmds_path"`
	} `mapstructure:"firebase"`

	Redis struct {
		Enabled   bool   `mapstructure:"enabled"`
		Addr      string `mapstructure:"addr"`
		Password  string `mapstructure:"password"`
		DB        int    `mapstructure:"db"`
		KeyPrefix string `mapstructure:"key_prefix"`
		MaxCmds   int64  `mapstructure:"max_cmds"`
	} `mapstructure:"redis"`

	// MQTT publishing reuses the broker connection from the top-level mqtt block.
	MQTTEnabled bool   `mapstructure:"mqtt_enabled"`
	TopicPrefix string `mapstructure:"topic_prefix"`
}

type MQTTConfig struct {
	Broker         string `mapstructure:"broker"`
	ClientID       string `mapstructure:"client_id"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	IngestEnabled  bool   `mapstructure:"ingest_enabled"`
	TelemetryTopic string `mapstructure:"telemetry_topic"`
	QoS            byte   `mapstructure:"qos"`
}

// MQTTNeeded reports whether anything needs a broker connection.
func (c *Config) MQTTNeeded() bool {
	return c.MQTT.IngestEnabled || c.Mirror.MQTTEnabled
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("timezone", "Asia/Ho_Chi_Minh")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "iot.db")

	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("weather.lat", 21.0285) // Hanoi
	v.SetDefault("weather.lon", 105.8542)
	v.SetDefault("weather.lang", "vi")
	v.SetDefault("weather.timeout", 5*time.Second)

	v.SetDefault("mirror.workers", 2)
	v.SetDefault("mirror.queue_size", 64)
	v.SetDefault("mirror.timeout", 5*time.Second)
	v.SetDefault("mirror.local_log", true)
	// Off without a URL; configs/config.yml turns it on for the project database.
	v.SetDefault("mirror.firebase.enabled", false)
	v.SetDefault("mirror.firebase.url", "")
	v.SetDefault("mirror.firebase.sensor_path", "cooling_system/sensor_data")
	v.SetDefault("mirror.firebase.cmds_path", "cooling_system/actuator_cmds")
	v.SetDefault("mirror.redis.enabled", false)
	v.SetDefault("mirror.redis.addr", "localhost:6379")
	v.SetDefault("mirror.redis.password", "")
	v.SetDefault("mirror.redis.db", 0)
	v.SetDefault("mirror.redis.key_prefix", "cooling_system")
	v.SetDefault("mirror.redis.max_cmds", 100)
	v.SetDefault("mirror.mqtt_enabled", false)
	v.SetDefault("mirror.topic_prefix", "cooling_system")

	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.client_id", "home-climate")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.ingest_enabled", false)
	v.SetDefault("mqtt.telemetry_topic", "home/+/telemetry")
	v.SetDefault("mqtt.qos", 1)

	v.SetDefault("simulator.enabled", false)
	v.SetDefault("simulator.tick", 5*time.Second)
}

// Load reads configs/config.yml (optional) plus environment overrides.
// HOME_CLIMATE_DB_PATH overrides db.path and so on; the weather key and
// location also honour OPENWEATHER_API_KEY, WEATHER_LAT and WEATHER_LON.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HOME_CLIMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range map[string]string{
		"weather.api_key": "OPENWEATHER_API_KEY",
		"weather.lat":     "WEATHER_LAT",
		"weather.lon":     "WEATHER_LON",
	} {
		if err := v.BindEnv(key, "HOME_CLIMATE_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if len(paths) == 0 {
		paths = []string{"configs", "."}
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("port must not be empty")
	}
	if strings.TrimSpace(c.DB.Path) == "" {
		return errors.New("db.path must not be empty")
	}
	if c.Mirror.Workers < 1 {
		return fmt.Errorf("mirror.workers must be >= 1, got %d", c.Mirror.Workers)
	}
	if c.Mirror.QueueSize < 1 {
		return fmt.Errorf("mirror.queue_size must be >= 1, got %d", c.Mirror.QueueSize)
	}
	if c.Mirror.Firebase.Enabled && strings.TrimSpace(c.Mirror.Firebase.URL) == "" {
		return errors.New("mirror.firebase.url is required when mirror.firebase.enabled is set")
	}
	if c.Simulator.Enabled && c.Simulator.Tick <= 0 {
		return errors.New("simulator.tick must be positive")
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", c.MQTT.QoS)
	}
	return nil
}
