package config

import (
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Server
	YooKassa
	Notify
}

type Server struct {
	Port string
}

type YooKassa struct {
	ShopID             string
	SecretKey          string
	APIURL             string
	ReturnURL          string
	DefaultCurrency    string
	DefaultDescription string
	RequestTimeout     time.Duration
}

type Notify struct {
	StorefrontURL  string
	RecordSinkURL  string
	RequestTimeout time.Duration
}

func NewConfig() *Config {
	return &Config{
		Server: Server{
			Port: getEnvString("SERVER_PORT", "8080"),
		},
		YooKassa: YooKassa{
			ShopID:             getEnvString("YOOKASSA_SHOP_ID", ""),
			SecretKey:          getEnvString("YOOKASSA_SECRET_KEY", ""),
			APIURL:             getEnvString("YOOKASSA_API_URL", "https://api.yookassa.ru/v3"),
			ReturnURL:          getEnvString("PAYMENT_RETURN_URL", "https://tvoi-sait.creatium.site/thanks"),
			DefaultCurrency:    getEnvString("PAYMENT_CURRENCY", "RUB"),
			DefaultDescription: getEnvString("PAYMENT_DESCRIPTION", "Оплата заказа"),
			RequestTimeout:     getEnvDuration("YOOKASSA_REQUEST_TIMEOUT", 10*time.Second),
		},
		Notify: Notify{
			StorefrontURL:  getEnvString("STOREFRONT_NOTIFY_URL", "https://api.creatium.io/integration-payment/third-party-payment"),
			RecordSinkURL:  getEnvString("RECORD_SINK_URL", ""),
			RequestTimeout: getEnvDuration("NOTIFY_REQUEST_TIMEOUT", 10*time.Second),
		},
	}
}

func getEnvString(key string, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	seconds, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return time.Duration(seconds) * time.Second
}
