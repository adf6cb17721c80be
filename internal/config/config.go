package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Leave    LeaveConfig    `mapstructure:"leave"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxRetries   int    `mapstructure:"max_retries"`
	Migrate      bool   `mapstructure:"migrate"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type KafkaConfig struct {
	Broker          string        `mapstructure:"broker"`
	LeaveTopic      string        `mapstructure:"leave_topic"`
	AttendanceTopic string        `mapstructure:"attendance_topic"`
	GroupID         string        `mapstructure:"group_id"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CalendarConfig struct {
	TimeZone     string   `mapstructure:"time_zone"`
	WeekendDays  []string `mapstructure:"weekend_days"`
	FullDayHours float64  `mapstructure:"full_day_hours"`
}

type LeaveTypeConfig struct {
	ID             string `mapstructure:"id"`
	Name           string `mapstructure:"name"`
	MaxDaysPerYear int    `mapstructure:"max_days_per_year"`
	Color          string `mapstructure:"color"`
}

type LeaveConfig struct {
	Types []LeaveTypeConfig `mapstructure:"types"`
}

type JobsConfig struct {
	AbsenteeSpec    string        `mapstructure:"absentee_spec"`
	AbsenteeTimeout time.Duration `mapstructure:"absentee_timeout"`
}

func defaultLeaveTypes() []map[string]any {
	return []map[string]any{
		{"id": "annual", "name": "Annual Leave", "max_days_per_year": 12, "color": "#4caf50"},
		{"id": "sick", "name": "Sick Leave", "max_days_per_year": 10, "color": "#f44336"},
		{"id": "unpaid", "name": "Unpaid Leave", "max_days_per_year": 30, "color": "#9e9e9e"},
	}
}

// Load reads .env (if present), then the optional YAML file at path, then
// HRIS_* environment variables. Later sources override earlier ones.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.port", "3000")
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.name", "hris")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.max_retries", 5)
	v.SetDefault("db.migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", "10m")

	v.SetDefault("kafka.broker", "")
	v.SetDefault("kafka.leave_topic", "hr.leave.status.v1")
	v.SetDefault("kafka.attendance_topic", "hr.attendance.events.v1")
	v.SetDefault("kafka.group_id", "hris-core-analytics")
	v.SetDefault("kafka.poll_interval", "3s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("calendar.time_zone", "UTC")
	v.SetDefault("calendar.weekend_days", []string{"saturday", "sunday"})
	v.SetDefault("calendar.full_day_hours", 0)

	v.SetDefault("leave.types", defaultLeaveTypes())

	v.SetDefault("jobs.absentee_spec", "15 0 * * *")
	v.SetDefault("jobs.absentee_timeout", "5m")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("HRIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Calendar.FullDayHours < 0 {
		return fmt.Errorf("calendar.full_day_hours must not be negative")
	}
	seen := map[string]bool{}
	for _, lt := range c.Leave.Types {
		if lt.ID == "" {
			return fmt.Errorf("leave type id is required")
		}
		if lt.MaxDaysPerYear < 0 {
			return fmt.Errorf("leave type %s: max_days_per_year must not be negative", lt.ID)
		}
		if seen[lt.ID] {
			return fmt.Errorf("duplicate leave type %s", lt.ID)
		}
		seen[lt.ID] = true
	}
	return nil
}
