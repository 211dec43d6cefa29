// Package config 负责加载 LinkScope 的配置
//
// 优先级 (低到高): 内置默认值 < 配置文件 < .env < 环境变量 < 命令行参数
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/RecoveryAshes/LinkScope/internal/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀, 如 LINKSCOPE_SCRAPE_POST_LIMIT
const EnvPrefix = "LINKSCOPE"

// Config 应用程序配置
type Config struct {
	Scrape      models.ScrapeConfig `mapstructure:"scrape"`
	Credentials CredentialsConfig   `mapstructure:"credentials"`
	Headers     map[string]string   `mapstructure:"headers"`
	Storage     StorageConfig       `mapstructure:"storage"`
	Server      ServerConfig        `mapstructure:"server"`
	Logging     LoggingConfig       `mapstructure:"logging"`
	Output      OutputConfig        `mapstructure:"output"`

	// 实际读取的配置文件,未找到时为空
	File string `mapstructure:"-"`
}

// CredentialsConfig 登录凭据
// 密码可以不写在配置里,由系统钥匙串提供
type CredentialsConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	Path          string `mapstructure:"path"`
	CacheTTLHours int    `mapstructure:"cache_ttl_hours"`
}

// ServerConfig HTTP服务配置
type ServerConfig struct {
	Addr                 string `mapstructure:"addr"`
	MaxConcurrentScrapes int    `mapstructure:"max_concurrent_scrapes"`
	RequestTimeout       int    `mapstructure:"request_timeout"` // 秒
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	LogDir   string         `mapstructure:"log_dir"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig 日志轮转配置
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	BaseDir string `mapstructure:"base_dir"`
}

// dotenvFiles 启动时尝试加载的 .env 文件
var dotenvFiles = []string{".env"}

// LoadConfig 加载配置
// configPath 为空时依次搜索 ./configs, . 和 $XDG_CONFIG_HOME/linkscope 下的 config.yaml,
// 都不存在时只使用默认值和环境变量
func LoadConfig(configPath string) (*Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}

	v := viper.New()

	if configPath != "" {
		if err := checkFileSize(configPath); err != nil {
			return nil, err
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &models.ConfigError{FilePath: configPath, Cause: err}
		}
		utils.Debugf("未找到配置文件,使用默认配置")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, &models.ConfigError{
			FilePath: v.ConfigFileUsed(),
			Cause:    fmt.Errorf("配置绑定失败: %w", err),
		}
	}
	config.File = v.ConfigFileUsed()

	if config.Headers == nil {
		config.Headers = make(map[string]string)
	}
	if strings.TrimSpace(config.Storage.Path) == "" {
		config.Storage.Path = DefaultDatabasePath()
	}

	if err := config.Validate(); err != nil {
		return nil, &models.ConfigError{FilePath: config.File, Cause: err}
	}
	return &config, nil
}

// loadDotenv 加载 .env, 已存在的环境变量不会被覆盖
func loadDotenv() error {
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return &models.ConfigError{FilePath: file, Cause: err}
		}
		utils.Debugf("已加载环境变量文件: %s", file)
	}
	return nil
}

// bindEnv 绑定环境变量
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 兼容不带前缀的常用变量名
	_ = v.BindEnv("credentials.email", "LINKEDIN_EMAIL")
	_ = v.BindEnv("credentials.password", "LINKEDIN_PASSWORD")
	_ = v.BindEnv("scrape.proxy_url", "PROXY_URL")
	_ = v.BindEnv("scrape.request_delay", "REQUEST_DELAY")
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	d := models.DefaultScrapeConfig()
	v.SetDefault("scrape.request_delay", d.RequestDelay)
	v.SetDefault("scrape.max_requests_per_minute", d.MaxRequestsPerMinute)
	v.SetDefault("scrape.post_limit", d.PostLimit)
	v.SetDefault("scrape.job_limit", d.JobLimit)
	v.SetDefault("scrape.employee_limit", d.EmployeeLimit)
	v.SetDefault("scrape.max_reveal_rounds", d.MaxRevealRounds)
	v.SetDefault("scrape.wait_time", d.WaitTime)
	v.SetDefault("scrape.settle_time", d.SettleTime)
	v.SetDefault("scrape.headless", d.Headless)
	v.SetDefault("scrape.proxy_url", "")
	v.SetDefault("scrape.user_agents", []string{})
	v.SetDefault("scrape.enrich_website", d.EnrichWebsite)
	v.SetDefault("scrape.min_free_memory_mb", d.MinFreeMemoryMB)
	v.SetDefault("scrape.cpu_load_threshold", d.CPULoadThreshold)
	v.SetDefault("scrape.timeout", d.Timeout)

	v.SetDefault("credentials.email", "")
	v.SetDefault("credentials.password", "")

	v.SetDefault("storage.path", DefaultDatabasePath())
	v.SetDefault("storage.cache_ttl_hours", 24)

	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.max_concurrent_scrapes", 2)
	v.SetDefault("server.request_timeout", 600)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.log_dir", "logs")
	v.SetDefault("logging.rotation.max_size", 10)
	v.SetDefault("logging.rotation.max_backups", 3)
	v.SetDefault("logging.rotation.max_age", 28)
	v.SetDefault("logging.rotation.compress", true)

	v.SetDefault("output.base_dir", "output")
}

// Validate 验证配置
func (c *Config) Validate() error {
	if err := c.Scrape.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("数据库路径不能为空")
	}
	if c.Storage.CacheTTLHours < 0 {
		return fmt.Errorf("缓存有效期不能为负数")
	}
	if c.Server.MaxConcurrentScrapes < 1 || c.Server.MaxConcurrentScrapes > 10 {
		return fmt.Errorf("最大并发抓取数必须在1-10之间")
	}
	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("请求超时不能为负数")
	}
	return nil
}

// LogConfig 转换为日志系统配置
func (c LoggingConfig) LogConfig() utils.LogConfig {
	return utils.LogConfig{
		Level:      c.Level,
		LogDir:     c.LogDir,
		MaxSize:    c.Rotation.MaxSize,
		MaxBackups: c.Rotation.MaxBackups,
		MaxAge:     c.Rotation.MaxAge,
		Compress:   c.Rotation.Compress,
	}
}
