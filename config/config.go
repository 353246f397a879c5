package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type CatalogConfig struct {
	// Categories accepted by the registration form. Stored records keep
	// category as free text, the check applies on entry only.
	Categories        []string `yaml:"categories" json:"categories"`
	LowStockThreshold int      `yaml:"low_stock_threshold" json:"low_stock_threshold"`
}

type WebhookConfig struct {
	URL     string `yaml:"url" json:"url"`
	Source  string `yaml:"source" json:"source"`
	Timeout int    `yaml:"timeout" json:"timeout"`
	Opaque  bool   `yaml:"opaque" json:"opaque"`
}

type AuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

type AppConfig struct {
	System  SysConfig     `yaml:"system" json:"system"`
	Web     WebConfig     `yaml:"web" json:"web"`
	Logger  LogConfig     `yaml:"logger" json:"logger"`
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`
	Webhook WebhookConfig `yaml:"webhook" json:"webhook"`
	Auth    AuthConfig    `yaml:"auth" json:"auth"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "Backoffice",
		Location: "America/Sao_Paulo",
		Workdir:  "/var/backoffice",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-backoffice-b9be-xxx",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "backoffice.log",
	},
	Catalog: CatalogConfig{
		Categories: []string{
			"camisetas", "leggings", "tops", "shorts", "jaquetas", "acessorios",
		},
		LowStockThreshold: 10,
	},
	Webhook: WebhookConfig{
		URL:     "https://n8n.perronifitwear.cloud/webhook/produtos",
		Source:  "perronifitwear-system",
		Timeout: 0,
		Opaque:  false,
	},
	Auth: AuthConfig{
		Username: "perronifitwear",
		Password: "athleisure",
	},
}

func setEnvValue(name string, val *string) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvIntValue(name string, val *int) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

func setEnvBoolValue(name string, val *bool) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

// LoadConfig reads the YAML config file when present and applies
// environment overrides on top of the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("BACKOFFICE_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("BACKOFFICE_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("BACKOFFICE_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvValue("BACKOFFICE_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("BACKOFFICE_WEB_PORT", &cfg.Web.Port)
	setEnvValue("BACKOFFICE_WEB_SECRET", &cfg.Web.Secret)
	setEnvValue("BACKOFFICE_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("BACKOFFICE_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvIntValue("BACKOFFICE_CATALOG_LOW_STOCK_THRESHOLD", &cfg.Catalog.LowStockThreshold)
	setEnvValue("BACKOFFICE_WEBHOOK_URL", &cfg.Webhook.URL)
	setEnvValue("BACKOFFICE_WEBHOOK_SOURCE", &cfg.Webhook.Source)
	setEnvIntValue("BACKOFFICE_WEBHOOK_TIMEOUT", &cfg.Webhook.Timeout)
	setEnvBoolValue("BACKOFFICE_WEBHOOK_OPAQUE", &cfg.Webhook.Opaque)
	setEnvValue("BACKOFFICE_AUTH_USERNAME", &cfg.Auth.Username)
	setEnvValue("BACKOFFICE_AUTH_PASSWORD", &cfg.Auth.Password)

	return cfg
}
