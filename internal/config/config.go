package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/wareline/shipping-svc/pkg/logger"
)

func MustInit() {
	if err := godotenv.Load("./.env"); err != nil {
		panic("error while loading .env file: " + err.Error())
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/shipping-svc")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		panic("error while reading config file: " + err.Error())
	}
	setDefaults()
	SetupLogger()
}

func setDefaults() {
	viper.SetDefault("shipping.home_country", "US")
	viper.SetDefault("server.http.port", "8080")
	viper.SetDefault("postgres.migrations_path", "./migrations")
	viper.SetDefault("rabbitmq.outbox.queue", "order.completed")
}

func SetupLogger() {
	handler := logger.NewHandler(nil)
	log := slog.New(handler)
	slog.SetDefault(log)
}
