package config

import "os"

// Config psi-dashboard（HTTP API）配置
type Config struct {
	HTTP struct {
		Addr string
	}
	// WorkbookPath 通報匯出活頁簿路徑（xlsx）
	WorkbookPath string
	Log          struct {
		Level  string
		Format string
	}
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.WorkbookPath = getEnv("WORKBOOK_PATH", "109-113全部_藥物跌倒管路傷害醫療治安__115_02_01.xlsx")
	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
