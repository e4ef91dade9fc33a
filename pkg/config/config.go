package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento admitidos.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App           AppConfig
	DB            DBConfig
	JWT           JWTConfig
	HTTP          HTTPConfig
	S3            S3Config
	Observability ObservabilityConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env        string // development, staging, production
	Name       string
	LogLevel   string
	BcryptCost int
}

// IsDevelopment indica si la app corre en modo desarrollo.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver      string // postgres | memory
	Migrate     bool   // ejecutar migraciones goose al arrancar
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string // CORS
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// S3Config almacenamiento de imágenes de producto (S3 o MinIO). Bucket vacío = deshabilitado.
type S3Config struct {
	Bucket         string
	Region         string
	Endpoint       string // vacío = AWS; http://localhost:9000 para MinIO
	AccessKey      string
	SecretKey      string
	PublicBaseURL  string // base pública para construir imageUrl
	UsePathStyle   bool
	PresignMinutes int
}

// Enabled indica si hay bucket configurado.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// ObservabilityConfig métricas Prometheus y trazas OpenTelemetry.
type ObservabilityConfig struct {
	MetricsEnabled bool
	OTLPEndpoint   string // vacío = trazas deshabilitadas
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env o config.env; se ignora si no existe.
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:        getString(v, "APP_ENV", "development"),
			Name:       getString(v, "APP_NAME", "commodities-api"),
			LogLevel:   getString(v, "LOG_LEVEL", "info"),
			BcryptCost: getInt(v, "BCRYPT_COST", 10),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "STORE_DRIVER", StoreDriverPostgres)),
			Migrate:     getBool(v, "DB_MIGRATE", true),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "commodities"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 24*60),
			Issuer:     getString(v, "JWT_ISSUER", "commodities-api"),
		},
		HTTP: HTTPConfig{
			Host:           getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:           getInt(v, "HTTP_PORT", 4000),
			AllowedOrigins: allowedOrigins(getString(v, "CORS_ALLOWED_ORIGINS", "http://localhost:3001"), getString(v, "FRONTEND_URL", "")),
		},
		S3: S3Config{
			Bucket:         getString(v, "S3_BUCKET", ""),
			Region:         getString(v, "S3_REGION", "us-east-1"),
			Endpoint:       getString(v, "S3_ENDPOINT", ""),
			AccessKey:      getString(v, "S3_ACCESS_KEY", ""),
			SecretKey:      getString(v, "S3_SECRET_KEY", ""),
			PublicBaseURL:  getString(v, "S3_PUBLIC_BASE_URL", ""),
			UsePathStyle:   getBool(v, "S3_USE_PATH_STYLE", false),
			PresignMinutes: getInt(v, "S3_PRESIGN_MINUTES", 15),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getBool(v, "METRICS_ENABLED", true),
			OTLPEndpoint:   getString(v, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("config: STORE_DRIVER desconocido %q", c.DB.Driver)
	}
	if c.JWT.Secret == "" {
		if !c.App.IsDevelopment() {
			return fmt.Errorf("config: JWT_SECRET es obligatorio fuera de development")
		}
		// Solo para desarrollo local; nunca usar en despliegues.
		c.JWT.Secret = "dev-only-commodities-secret"
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("config: JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	return nil
}

// allowedOrigins une la lista separada por comas con FRONTEND_URL, sin vacíos ni duplicados.
func allowedOrigins(list, frontendURL string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, o := range append(strings.Split(list, ","), frontendURL) {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
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
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
