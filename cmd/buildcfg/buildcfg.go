package buildcfg

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
)

type ServerConfig struct {
	Port string
	Mode string
}

type RabbitConfig struct {
	Url      string
	Exchange string
	Queue    string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.GetString("server.port")
	}
	if port == "" {
		port = "2000"
	}

	mode := cfg.GetString("server.mode")
	if mode == "" {
		mode = "release"
	}

	log.Info().Str("port", port).Str("mode", mode).Msg("server config built")
	return ServerConfig{Port: port, Mode: mode}
}

func BuildDBConfig(cfg *config.Config, log *zerolog.Logger) (string, []string, *dbpg.Options, error) {
	masterDSN := os.Getenv("DATABASE_URL")
	if masterDSN == "" {
		masterDSN = cfg.GetString("database.master_dsn")
	}
	if masterDSN == "" {
		return "", nil, nil, fmt.Errorf("database.master_dsn is not configured")
	}

	slaveDSNs := cfg.GetStringSlice("database.slave_dsns")

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.GetInt("database.max_open_conns"),
		MaxIdleConns:    cfg.GetInt("database.max_idle_conns"),
		ConnMaxLifetime: time.Duration(cfg.GetInt("database.conn_max_lifetime_seconds")) * time.Second,
	}

	log.Info().Int("slaves", len(slaveDSNs)).Msg("database config built")
	return masterDSN, slaveDSNs, opts, nil
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (RabbitConfig, error) {
	url := cfg.GetString("rabbit.url")
	if url == "" {
		return RabbitConfig{}, fmt.Errorf("rabbit.url is not configured")
	}

	exchange := cfg.GetString("rabbit.exchange")
	if exchange == "" {
		exchange = "submission.events"
	}
	queue := cfg.GetString("rabbit.queue")
	if queue == "" {
		queue = "submission-events"
	}

	log.Info().Str("exchange", exchange).Str("queue", queue).Msg("rabbit config built")
	return RabbitConfig{Url: url, Exchange: exchange, Queue: queue}, nil
}

// BuildCloudinaryConfig prefers the CLOUDINARY_* env vars the deployment
// sets, falling back to config.yaml values.
func BuildCloudinaryConfig(cfg *config.Config, log *zerolog.Logger) (CloudinaryConfig, error) {
	c := CloudinaryConfig{
		CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}
	if c.CloudName == "" {
		c.CloudName = cfg.GetString("cloudinary.cloud_name")
	}
	if c.APIKey == "" {
		c.APIKey = cfg.GetString("cloudinary.api_key")
	}
	if c.APISecret == "" {
		c.APISecret = cfg.GetString("cloudinary.api_secret")
	}

	if c.CloudName == "" || c.APIKey == "" || c.APISecret == "" {
		return CloudinaryConfig{}, fmt.Errorf("cloudinary credentials are not configured")
	}

	log.Info().Str("cloud_name", c.CloudName).Msg("cloudinary config built")
	return c, nil
}
