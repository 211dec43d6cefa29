package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/zalando/go-keyring"
)

// clearEnv 屏蔽宿主环境中可能存在的同名变量
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"LINKEDIN_EMAIL", "LINKEDIN_PASSWORD", "PROXY_URL", "REQUEST_DELAY"} {
		t.Setenv(name, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入文件失败: %v", err)
	}
	return path
}

func TestLoadConfig_默认值(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	d := models.DefaultScrapeConfig()
	if cfg.Scrape.RequestDelay != d.RequestDelay || cfg.Scrape.PostLimit != 10 || cfg.Scrape.JobLimit != 20 || cfg.Scrape.EmployeeLimit != 50 {
		t.Errorf("抓取默认值错误: %+v", cfg.Scrape)
	}
	if !cfg.Scrape.Headless || !cfg.Scrape.EnrichWebsite {
		t.Error("headless 和 enrich_website 默认应开启")
	}
	if cfg.Storage.Path != DefaultDatabasePath() || cfg.Storage.CacheTTLHours != 24 {
		t.Errorf("存储默认值错误: %+v", cfg.Storage)
	}
	if cfg.Server.Addr != ":8000" || cfg.Server.MaxConcurrentScrapes != 2 {
		t.Errorf("服务默认值错误: %+v", cfg.Server)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Rotation.MaxSize != 10 {
		t.Errorf("日志默认值错误: %+v", cfg.Logging)
	}
	if cfg.Headers == nil {
		t.Error("Headers 应初始化为空map")
	}
}

func TestLoadConfig_配置文件与环境变量(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
scrape:
  post_limit: 5
  job_limit: 7
  proxy_url: "http://proxy.local:8080"
credentials:
  email: file@example.com
headers:
  Accept-Language: "de-DE"
server:
  addr: "127.0.0.1:9000"
`)

	t.Setenv("LINKSCOPE_SCRAPE_JOB_LIMIT", "9")
	t.Setenv("REQUEST_DELAY", "1.5")
	t.Setenv("LINKEDIN_EMAIL", "env@example.com")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	tests := []struct {
		name   string
		got    any
		want   any
		reason string
	}{
		{"配置文件值", cfg.Scrape.PostLimit, 5, "文件覆盖默认值"},
		{"前缀环境变量", cfg.Scrape.JobLimit, 9, "LINKSCOPE_ 前缀变量覆盖文件"},
		{"兼容变量REQUEST_DELAY", cfg.Scrape.RequestDelay, 1.5, "字符串按类型转换"},
		{"兼容变量LINKEDIN_EMAIL", cfg.Credentials.Email, "env@example.com", "环境变量覆盖文件"},
		{"代理地址", cfg.Scrape.ProxyURL, "http://proxy.local:8080", "文件值"},
		{"服务地址", cfg.Server.Addr, "127.0.0.1:9000", "文件值"},
		{"未配置的键保持默认", cfg.Scrape.EmployeeLimit, 50, "默认值"},
		{"实际使用的文件", cfg.File, path, "记录配置文件路径"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("得到 %v, 期望 %v (%s)", tt.got, tt.want, tt.reason)
			}
		})
	}

	// viper 会把键转成小写
	if cfg.Headers["accept-language"] != "de-DE" {
		t.Errorf("headers 读取错误: %v", cfg.Headers)
	}
}

func TestLoadConfig_Dotenv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "LINKSCOPE_SCRAPE_MAX_REVEAL_ROUNDS=4\n")
	t.Cleanup(func() { os.Unsetenv("LINKSCOPE_SCRAPE_MAX_REVEAL_ROUNDS") })

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Scrape.MaxRevealRounds != 4 {
		t.Errorf(".env 中的变量未生效: max_reveal_rounds = %d", cfg.Scrape.MaxRevealRounds)
	}
}

func TestLoadConfig_错误(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	tests := []struct {
		name   string
		path   string
		reason string
	}{
		{"文件不存在", filepath.Join(dir, "missing.yaml"), "显式指定的文件必须存在"},
		{"数值越界", writeFile(t, dir, "bad.yaml", "scrape:\n  post_limit: 1000\n"), "post_limit 超过100"},
		{"并发数越界", writeFile(t, dir, "server.yaml", "server:\n  max_concurrent_scrapes: 0\n"), "至少为1"},
		{"YAML语法错误", writeFile(t, dir, "broken.yaml", "scrape: [unclosed\n"), "无法解析"},
		{"文件过大", writeFile(t, dir, "huge.yaml", "# "+strings.Repeat("x", MaxConfigFileSize)), "超过1MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path)
			var ce *models.ConfigError
			if !errors.As(err, &ce) {
				t.Errorf("期望 ConfigError (%s), 实际 %v", tt.reason, err)
			}
		})
	}
}

func TestWriteTemplate(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("WriteTemplate() error = %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Error("文件已存在时应返回错误")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Errorf("force 应覆盖已有文件: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("模板文件权限 = %v, 期望 0600", info.Mode().Perm())
	}

	// 模板本身必须能通过加载和校验
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("模板无法加载: %v", err)
	}
	if cfg.Storage.Path != DefaultDatabasePath() {
		t.Errorf("模板中空的 storage.path 应回退到默认路径, 实际 %q", cfg.Storage.Path)
	}
}

func TestResolveCredentials(t *testing.T) {
	keyring.MockInit()
	if err := SavePassword("kr@example.com", "from-keyring"); err != nil {
		t.Fatalf("SavePassword() error = %v", err)
	}

	tests := []struct {
		name     string
		cfg      CredentialsConfig
		expected models.Credentials
		present  bool
	}{
		{"配置中的密码优先", CredentialsConfig{Email: "kr@example.com", Password: "inline"}, models.Credentials{Email: "kr@example.com", Password: "inline"}, true},
		{"回退到钥匙串", CredentialsConfig{Email: " kr@example.com "}, models.Credentials{Email: "kr@example.com", Password: "from-keyring"}, true},
		{"钥匙串中没有", CredentialsConfig{Email: "none@example.com"}, models.Credentials{Email: "none@example.com"}, false},
		{"没有邮箱", CredentialsConfig{}, models.Credentials{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Credentials: tt.cfg}
			got := cfg.ResolveCredentials()
			if got != tt.expected {
				t.Errorf("ResolveCredentials() = %+v, 期望 %+v", got, tt.expected)
			}
			if got.Present() != tt.present {
				t.Errorf("Present() = %v, 期望 %v", got.Present(), tt.present)
			}
		})
	}

	if err := DeletePassword("kr@example.com"); err != nil {
		t.Errorf("DeletePassword() error = %v", err)
	}
	if err := DeletePassword("kr@example.com"); err != nil {
		t.Errorf("重复删除不应报错: %v", err)
	}
	if err := SavePassword("", "x"); err == nil {
		t.Error("空邮箱应返回错误")
	}
}
