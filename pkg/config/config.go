package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/jhoicas/fletes-api/pkg/sunat"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	Mongo     MongoConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	Billing   BillingConfig
	Scheduler SchedulerConfig
	Log       LogConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// MongoConfig conexión al document store.
// Transactions requiere un replica set; en standalone dejar en false y se aplican compensaciones.
type MongoConfig struct {
	URI          string
	Database     string
	Timeout      time.Duration
	Transactions bool
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig lock distribuido del barrido de vencidos. URL vacía = sin lock.
type RedisConfig struct {
	URL string
}

// BillingConfig parámetros de negocio de facturación y detracción.
type BillingConfig struct {
	DiasVencimiento  int
	MonedaDefault    string
	DetraccionUmbral decimal.Decimal
	DetraccionTasa   decimal.Decimal
	EmisorNombre     string // razón social impresa en el PDF
	EmisorRUC        string
}

// SchedulerConfig barrido periódico de vencidos. Interval 0 lo desactiva.
type SchedulerConfig struct {
	OverdueInterval time.Duration
}

// LogConfig nivel del logger.
type LogConfig struct {
	Level string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, MONGO_URI, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	umbral, err := getDecimal(v, "DETRACCION_UMBRAL", "400")
	if err != nil {
		return nil, err
	}
	tasa, err := getDecimal(v, "DETRACCION_TASA", "4.0")
	if err != nil {
		return nil, err
	}
	if tasa.IsNegative() || tasa.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("config: DETRACCION_TASA fuera de rango (0-100): %s", tasa)
	}

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "fletes-api"),
		},
		Mongo: MongoConfig{
			URI:          getString(v, "MONGO_URI", "mongodb://localhost:27017"),
			Database:     getString(v, "MONGO_DATABASE", "fletes"),
			Timeout:      time.Duration(getInt(v, "MONGO_TIMEOUT_SECONDS", 10)) * time.Second,
			Transactions: getBool(v, "MONGO_TRANSACTIONS", false),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "fletes-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			URL: getString(v, "REDIS_URL", ""),
		},
		Billing: BillingConfig{
			DiasVencimiento:  getInt(v, "FACTURA_DIAS_VENCIMIENTO", 30),
			MonedaDefault:    strings.ToUpper(getString(v, "FACTURA_MONEDA_DEFAULT", "PEN")),
			DetraccionUmbral: umbral,
			DetraccionTasa:   tasa,
			EmisorNombre:     getString(v, "EMPRESA_RAZON_SOCIAL", ""),
			EmisorRUC:        getString(v, "EMPRESA_RUC", ""),
		},
		Scheduler: SchedulerConfig{
			OverdueInterval: time.Duration(getInt(v, "OVERDUE_SWEEP_MINUTES", 0)) * time.Minute,
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
	}
	if cfg.Billing.DiasVencimiento <= 0 {
		return nil, fmt.Errorf("config: FACTURA_DIAS_VENCIMIENTO debe ser positivo")
	}
	if cfg.Billing.EmisorRUC != "" {
		if err := sunat.ValidateRUC(cfg.Billing.EmisorRUC); err != nil {
			return nil, fmt.Errorf("config: EMPRESA_RUC: %w", err)
		}
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func getDecimal(v *viper.Viper, key, def string) (decimal.Decimal, error) {
	s := getString(v, key, def)
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: %s inválido %q: %w", key, s, err)
	}
	return d, nil
}
