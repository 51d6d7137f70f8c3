package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

type (
	APP struct {
		Name    string
		Env     string
		OpsPort string
		// JWTSecret verifies caller tokens minted by the auth collaborator.
		JWTSecret string
		// OpenRegistration: when false, users.create requires an Admin caller.
		OpenRegistration bool
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		EventQueue   string
		RPCQueue     string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Config struct {
		App   APP
		DB    DB
		MQ    MQ
		Redis Redis
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func Load() Config {
	app := APP{
		Name:             getEnv("SERVICE_NAME", "userdirectory"),
		Env:              getEnv("SERVICE_ENV", ""),
		OpsPort:          getEnv("SERVICE_OPS_PORT", "8081"),
		JWTSecret:        getEnv("SERVICE_JWT_SECRET", ""),
		OpenRegistration: getEnvBool("DIRECTORY_OPEN_REGISTRATION", true),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "users.events"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		EventQueue:   getEnv("RABBITMQ_EVENT_QUEUE", "users.events.q"),
		RPCQueue:     getEnv("RABBITMQ_RPC_QUEUE", "users.rpc"),
	}
	redis := Redis{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	return Config{
		App:   app,
		DB:    db,
		MQ:    mq,
		Redis: redis,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
