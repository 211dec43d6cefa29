package crawlers

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// ResourceMonitor 系统资源检查器
// 职责: 启动浏览器前确认可用内存与CPU负载,资源紧张时拒绝启动
type ResourceMonitor struct {
	config ResourceMonitorConfig

	// 采样函数,测试中可替换
	availableMemory func() (uint64, error)
	cpuUsage        func() (float64, error)
}

// ResourceMonitorConfig 资源检查配置
type ResourceMonitorConfig struct {
	MinFreeMemoryMB  int // 启动浏览器所需最小可用内存(MB),0表示不检查
	CPULoadThreshold int // CPU负载阈值(%),0或>=100表示不检查
}

// MemoryStatus 内存状态信息
type MemoryStatus struct {
	AvailableMB    uint64 // 可用内存(MB)
	RequiredMB     int    // 要求的最小可用内存(MB)
	MemoryPressure string // 内存压力等级
}

// NewResourceMonitor 创建资源检查器
func NewResourceMonitor(config ResourceMonitorConfig) *ResourceMonitor {
	return &ResourceMonitor{
		config:          config,
		availableMemory: systemAvailableMemory,
		cpuUsage:        systemCPUUsage,
	}
}

// systemAvailableMemory 使用gopsutil获取系统可用内存(字节)
func systemAvailableMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

// systemCPUUsage 采样100毫秒内全部核心的平均使用率
func systemCPUUsage() (float64, error) {
	percentages, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		return 0, err
	}
	if len(percentages) == 0 {
		return 0, fmt.Errorf("CPU使用率数据为空")
	}
	return percentages[0], nil
}

// CheckAvailability 检查当前资源是否允许启动浏览器
// 返回canLaunch(是否允许启动)和reason(不允许时的原因)
// 采样失败时不阻止启动
func (rm *ResourceMonitor) CheckAvailability() (canLaunch bool, reason string) {
	if rm.config.MinFreeMemoryMB > 0 {
		status, err := rm.MemoryStatus()
		if err != nil {
			log.Warn().Err(err).Msg("获取系统内存失败,跳过内存检查")
		} else if status.AvailableMB < uint64(rm.config.MinFreeMemoryMB) {
			log.Warn().Msgf("可用内存不足(当前%dMB),浏览器启动受限", status.AvailableMB)
			return false, fmt.Sprintf("内存不足(当前%dMB,至少需要%dMB)", status.AvailableMB, rm.config.MinFreeMemoryMB)
		}
	}

	if rm.config.CPULoadThreshold > 0 && rm.config.CPULoadThreshold < 100 {
		usage, err := rm.cpuUsage()
		if err != nil {
			log.Warn().Err(err).Msg("获取CPU使用率失败,跳过CPU检查")
		} else if usage > float64(rm.config.CPULoadThreshold) {
			return false, fmt.Sprintf("CPU负载过高(当前%.1f%%)", usage)
		}
	}

	return true, ""
}

// MemoryStatus 获取当前内存状态
func (rm *ResourceMonitor) MemoryStatus() (MemoryStatus, error) {
	available, err := rm.availableMemory()
	if err != nil {
		return MemoryStatus{}, err
	}
	availableMB := available / (1024 * 1024)

	var pressure string
	switch {
	case availableMB < 200:
		pressure = "emergency"
	case availableMB < 300:
		pressure = "critical"
	case availableMB < 500:
		pressure = "warning"
	default:
		pressure = "normal"
	}

	return MemoryStatus{
		AvailableMB:    availableMB,
		RequiredMB:     rm.config.MinFreeMemoryMB,
		MemoryPressure: pressure,
	}, nil
}
