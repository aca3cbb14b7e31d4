package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// HTTP
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	// Postgres
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:""`
	DBName     string `envconfig:"DB_NAME" default:"club_membership"`
	// Redis
	RedisHost string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort string `envconfig:"REDIS_PORT" default:"6379"`
	// RabbitMQ (optional; events are skipped when empty)
	AMQPURL      string `envconfig:"AMQP_URL" default:""`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"club.events"`
	// Room inventory (optional; embedded catalog when empty)
	RoomsFile string `envconfig:"ROOMS_FILE" default:""`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
