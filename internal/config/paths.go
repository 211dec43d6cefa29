package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName 用于 XDG 目录和钥匙串服务名
const AppName = "linkscope"

// ConfigDir 用户级配置目录, 如 ~/.config/linkscope
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultConfigFile 用户级配置文件
func DefaultConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultDatabasePath 默认数据库位置, 如 ~/.local/share/linkscope/linkscope.db
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, AppName, AppName+".db")
}
