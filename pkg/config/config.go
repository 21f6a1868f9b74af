package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIBaseURL dirección base de la API remota. Se fija en build:
//
//	go build -ldflags "-X github.com/jhoicas/devostorange/pkg/config.DefaultAPIBaseURL=https://..."
var DefaultAPIBaseURL = "https://devotech.com.br/devostorange/devostorange_api/public"

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	UI      UIConfig
	Sandbox SandboxConfig
	JWT     JWTConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig configuración del cliente HTTP hacia la API remota.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Timeout devuelve el timeout de red como time.Duration.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig ubicación del archivo donde se persiste la sesión (token + identidad).
type SessionConfig struct {
	File string
}

// UIConfig parámetros de presentación compartidos por los controladores de vista.
type UIConfig struct {
	BasePath             string // prefijo fijo de rutas de la SPA
	ToastDismissMillis   int
	LowStockThreshold    int
	RecentMovementsLimit int
}

// ToastDismiss devuelve el retardo de auto-cierre de notificaciones.
func (c UIConfig) ToastDismiss() time.Duration {
	return time.Duration(c.ToastDismissMillis) * time.Millisecond
}

// SandboxConfig configuración de la API sandbox en memoria (cmd/sandbox).
type SandboxConfig struct {
	Host      string
	Port      int
	PublicURL string // URL pública usada para construir enlaces de descarga
	FilesDir  string // directorio donde se guardan los reportes generados
}

// Addr devuelve la dirección de escucha (host:port).
func (c SandboxConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT (solo la usa el sandbox para emitir tokens).
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, SESSION_FILE, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

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

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	port := getInt(v, "SANDBOX_PORT", 8088)
	host := getString(v, "SANDBOX_HOST", "127.0.0.1")
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "devostorange"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL:        strings.TrimRight(getString(v, "API_BASE_URL", DefaultAPIBaseURL), "/"),
			TimeoutSeconds: getInt(v, "HTTP_TIMEOUT_SECONDS", 15),
		},
		Session: SessionConfig{
			File: getString(v, "SESSION_FILE", defaultSessionFile()),
		},
		UI: UIConfig{
			BasePath:             getString(v, "APP_BASE_PATH", "/devostorange"),
			ToastDismissMillis:   getInt(v, "TOAST_DISMISS_MS", 4500),
			LowStockThreshold:    getInt(v, "LOW_STOCK_THRESHOLD", 5),
			RecentMovementsLimit: getInt(v, "RECENT_MOVEMENTS_LIMIT", 10),
		},
		Sandbox: SandboxConfig{
			Host:      host,
			Port:      port,
			PublicURL: strings.TrimRight(getString(v, "SANDBOX_PUBLIC_URL", fmt.Sprintf("http://%s:%d", host, port)), "/"),
			FilesDir:  getString(v, "SANDBOX_FILES_DIR", filepath.Join(os.TempDir(), "devostorange-arquivos")),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", "sandbox-secret"),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "devostorange-sandbox"),
		},
	}
}

// defaultSessionFile ubica session.json en el directorio de configuración del usuario.
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "devostorange", "session.json")
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
			n, err := strconv.Atoi(v.GetString(key))
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
