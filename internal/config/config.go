package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string `mapstructure:"PORT"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
	FrontendURL  string `mapstructure:"FRONTEND_URL"`
	EnableCORS   bool   `mapstructure:"ENABLE_CORS"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	EmailFrom    string `mapstructure:"EMAIL_FROM"`

	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`

	PaymentShopID    string `mapstructure:"PAYMENT_SHOP_ID"`
	PaymentShopKey   string `mapstructure:"PAYMENT_SHOP_KEY"`
	PaymentAPIURL    string `mapstructure:"PAYMENT_API_URL"`
	PaymentSecretKey string `mapstructure:"PAYMENT_SECRET_KEY"`

	NotificationQueueSize int    `mapstructure:"NOTIFICATION_QUEUE_SIZE"`
	ReservationHoldTTLMin int    `mapstructure:"RESERVATION_HOLD_TTL_MIN"`
	SweeperSchedule       string `mapstructure:"SWEEPER_SCHEDULE"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "rondo.db")
	viper.SetDefault("FRONTEND_URL", "http://127.0.0.1:5173")
	viper.SetDefault("SMTP_PORT", 465)
	viper.SetDefault("PAYMENT_API_URL", "https://api.yookassa.ru/v3/payments")
	viper.SetDefault("NOTIFICATION_QUEUE_SIZE", 256)
	viper.SetDefault("RESERVATION_HOLD_TTL_MIN", 15)
	viper.SetDefault("SWEEPER_SCHEDULE", "@every 1m")

	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("FRONTEND_URL")
	viper.BindEnv("ENABLE_CORS")
	viper.BindEnv("SMTP_HOST")
	viper.BindEnv("SMTP_USERNAME")
	viper.BindEnv("SMTP_PASSWORD")
	viper.BindEnv("EMAIL_FROM")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	viper.BindEnv("PAYMENT_SHOP_ID")
	viper.BindEnv("PAYMENT_SHOP_KEY")
	viper.BindEnv("PAYMENT_SECRET_KEY")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
