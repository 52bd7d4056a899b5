package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	CallAPI CallAPIConfig
	Booking BookingConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// CallAPIConfig holds credentials for the outbound voice-call provider.
// CallerIdentity is passed as the first user-data variable on every call.
type CallAPIConfig struct {
	BaseURL        string
	APIKey         string
	AgentID        string
	CallerIdentity string
}

// BookingConfig defines the appointment slot grid: hourly slots between
// OpenHour (inclusive) and CloseHour (exclusive), each holding SlotCapacity
// bookings.
type BookingConfig struct {
	OpenHour     int
	CloseHour    int
	SlotCapacity int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	openHour := viper.GetInt("BOOKING_OPEN_HOUR")
	closeHour := viper.GetInt("BOOKING_CLOSE_HOUR")
	if openHour == 0 && closeHour == 0 {
		openHour, closeHour = 9, 17
	}

	slotCapacity := viper.GetInt("BOOKING_SLOT_CAPACITY")
	if slotCapacity <= 0 {
		slotCapacity = 1
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		CallAPI: CallAPIConfig{
			BaseURL:        viper.GetString("CALL_API_URL"),
			APIKey:         viper.GetString("CALL_API_KEY"),
			AgentID:        viper.GetString("CALL_AGENT_ID"),
			CallerIdentity: viper.GetString("CALL_CALLER_IDENTITY"),
		},
		Booking: BookingConfig{
			OpenHour:     openHour,
			CloseHour:    closeHour,
			SlotCapacity: slotCapacity,
		},
	}

	return config, nil
}
