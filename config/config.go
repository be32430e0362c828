package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Host              string        `env:"PONGY_HOST" envDefault:"0.0.0.0"`
	Port              int           `env:"PONGY_PORT" envDefault:"8888"`
	LogLevel          string        `env:"PONGY_LOG_LEVEL" envDefault:"debug"`
	LogFormat         string        `env:"PONGY_LOG_FORMAT" envDefault:"json"`
	TickHz            int           `env:"PONGY_TICK_HZ" envDefault:"60"`
	HeartbeatInterval time.Duration `env:"PONGY_HEARTBEAT_INTERVAL" envDefault:"10s"`
	SendBuffer        int           `env:"PONGY_SEND_BUFFER" envDefault:"16"` // outbound frames queued per connection
}

// Load reads the optional dotenv files (".env" when none are given) into the
// process environment and parses the result. Variables already set in the
// environment win over the files.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load dotenv: %w", err)
		}
		log.Println("No .env file found, using process environment")
	}

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.TickHz <= 0 {
		return fmt.Errorf("tick rate must be > 0, got %d", c.TickHz)
	}
	if c.HeartbeatInterval <= 0 {
		return fmt.Errorf("heartbeat interval must be > 0, got %s", c.HeartbeatInterval)
	}
	if c.SendBuffer <= 0 {
		return fmt.Errorf("send buffer must be > 0, got %d", c.SendBuffer)
	}
	return nil
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// TickRate is the interval between simulation ticks.
func (c Config) TickRate() time.Duration {
	return time.Second / time.Duration(c.TickHz)
}
