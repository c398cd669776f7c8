package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 結構
type Config struct {
	AppName      string             `mapstructure:"appName"`
	Server       ServerConfig       `mapstructure:"server"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Database     DatabaseConfig     `mapstructure:"database"`
	GeminiClient GeminiClientConfig `mapstructure:"geminiClient"`
	YtDlp        YtDlpConfig        `mapstructure:"ytDlp"`
	Chapters     ChaptersConfig     `mapstructure:"chapters"`
	Cleanup      CleanupConfig      `mapstructure:"cleanup"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbName"`
}

type GeminiClientConfig struct {
	APIKey string `mapstructure:"apiKey"`
	Model  string `mapstructure:"model"`
}

// YtDlpConfig 描述 yt-dlp 執行檔與字幕暫存目錄。
type YtDlpConfig struct {
	BinaryPath string `mapstructure:"binaryPath"`
	TempDir    string `mapstructure:"tempDir"`
}

// ChaptersConfig 描述未指定章節數時的預設章節數範圍。
// 舊版程式碼中存在 5–10 與 3–10 兩種範圍，此處統一以設定檔為準，
// 預設 5–10。
type ChaptersConfig struct {
	MinCount int `mapstructure:"minCount"`
	MaxCount int `mapstructure:"maxCount"`
}

// CleanupConfig 描述字幕暫存目錄的清理排程。
type CleanupConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	CronSpec  string `mapstructure:"cronSpec"`
	MaxAgeHrs int    `mapstructure:"maxAgeHrs"`
}

// Load 讀取設定檔並套用預設值與環境變數覆寫。
func Load(configPath string, configName string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(configPath)
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 設定預設值
	v.SetDefault("appName", "ytchapters")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("geminiClient.model", "gemini-2.0-flash-lite")
	v.SetDefault("ytDlp.binaryPath", "yt-dlp")
	v.SetDefault("ytDlp.tempDir", "./temp")
	v.SetDefault("chapters.minCount", 5)
	v.SetDefault("chapters.maxCount", 10)
	v.SetDefault("cleanup.enabled", true)
	v.SetDefault("cleanup.cronSpec", "0 0 * * * *")
	v.SetDefault("cleanup.maxAgeHrs", 24)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("警告：找不到設定檔，將使用預設值和環境變數。")
		} else {
			return nil, fmt.Errorf("讀取設定檔時發生錯誤: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("無法解析設定檔到結構: %w", err)
	}

	if cfg.GeminiClient.APIKey == "" {
		fmt.Println("警告：Gemini API Key 未設定！")
	}
	if cfg.Auth.JWTSecret == "" {
		fmt.Println("警告：JWT 簽章密鑰未設定，所有 API 請求都將被拒絕。")
	}

	fmt.Println("資訊：設定載入成功。")
	return &cfg, nil
}
