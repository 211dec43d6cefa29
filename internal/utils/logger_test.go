package utils

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testLogConfig(dir, level string) LogConfig {
	return LogConfig{
		Level:      level,
		LogDir:     dir,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Console:    io.Discard,
	}
}

func TestInitLogger(t *testing.T) {
	tempDir := filepath.Join(t.TempDir(), "nested", "logs")

	if err := InitLogger(testLogConfig(tempDir, "debug")); err != nil {
		t.Fatalf("初始化日志器失败: %v", err)
	}

	if _, err := os.Stat(tempDir); os.IsNotExist(err) {
		t.Errorf("日志目录未创建: %s", tempDir)
	}

	Info("测试信息日志")
	Debug("测试调试日志")

	content, err := os.ReadFile(filepath.Join(tempDir, MainLogFile))
	if err != nil {
		t.Fatalf("主日志文件未创建: %v", err)
	}
	if !bytes.Contains(content, []byte("测试调试日志")) {
		t.Error("debug级别下调试日志应写入主日志")
	}
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	if err := InitLogger(testLogConfig(tempDir, "info")); err != nil {
		t.Fatalf("初始化日志器失败: %v", err)
	}

	Infof("格式化信息日志: %s", "测试")
	Warnf("格式化警告日志: %d", 123)
	Debugf("格式化调试日志: %v", true)

	content, err := os.ReadFile(filepath.Join(tempDir, MainLogFile))
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	if !bytes.Contains(content, []byte("格式化警告日志: 123")) {
		t.Error("警告日志未写入")
	}
	if bytes.Contains(content, []byte("格式化调试日志")) {
		t.Error("info级别不应输出调试日志")
	}
}

// TestErrorLogFile 错误日志文件只收 error 及以上
func TestErrorLogFile(t *testing.T) {
	tempDir := t.TempDir()

	if err := InitLogger(testLogConfig(tempDir, "info")); err != nil {
		t.Fatalf("初始化日志器失败: %v", err)
	}

	Warn("只是警告")
	Error(errors.New("boom"), "真正的错误")

	content, err := os.ReadFile(filepath.Join(tempDir, ErrorLogFile))
	if err != nil {
		t.Fatalf("读取错误日志失败: %v", err)
	}
	if !strings.Contains(string(content), "真正的错误") {
		t.Error("错误日志应包含 error 级别消息")
	}
	if strings.Contains(string(content), "只是警告") || strings.Contains(string(content), "日志系统初始化完成") {
		t.Errorf("错误日志不应包含低级别消息: %s", content)
	}
}

func TestDefaultLogConfig(t *testing.T) {
	config := DefaultLogConfig()

	if config.Level != "info" {
		t.Errorf("默认日志级别错误: 期望 'info', 得到 '%s'", config.Level)
	}
	if config.LogDir != "logs" {
		t.Errorf("默认日志目录错误: 期望 'logs', 得到 '%s'", config.LogDir)
	}
	if config.MaxSize != 10 || config.MaxBackups != 3 || config.MaxAge != 28 {
		t.Errorf("默认轮转参数错误: %+v", config)
	}
	if !config.Compress {
		t.Error("默认应该启用压缩")
	}
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	tempDir := t.TempDir()

	if err := InitLogger(testLogConfig(tempDir, "verbose")); err != nil {
		t.Fatalf("无效级别不应导致初始化失败: %v", err)
	}
	Debug("不应出现")
	Info("应该出现")

	content, _ := os.ReadFile(filepath.Join(tempDir, MainLogFile))
	if bytes.Contains(content, []byte("不应出现")) || !bytes.Contains(content, []byte("应该出现")) {
		t.Errorf("无效级别应回退到info: %s", content)
	}
}
