package crawlers

import (
	"errors"
	"testing"
)

func fakeMonitor(cfg ResourceMonitorConfig, availMB uint64, cpu float64, sampleErr error) *ResourceMonitor {
	return &ResourceMonitor{
		config:          cfg,
		availableMemory: func() (uint64, error) { return availMB * 1024 * 1024, sampleErr },
		cpuUsage:        func() (float64, error) { return cpu, sampleErr },
	}
}

func TestResourceMonitor_CheckAvailability(t *testing.T) {
	tests := []struct {
		name      string
		cfg       ResourceMonitorConfig
		availMB   uint64
		cpu       float64
		sampleErr error
		expected  bool
	}{
		{"资源充足", ResourceMonitorConfig{MinFreeMemoryMB: 512, CPULoadThreshold: 90}, 2048, 20, nil, true},
		{"内存不足", ResourceMonitorConfig{MinFreeMemoryMB: 512, CPULoadThreshold: 90}, 256, 20, nil, false},
		{"CPU过载", ResourceMonitorConfig{MinFreeMemoryMB: 512, CPULoadThreshold: 90}, 2048, 99, nil, false},
		{"检查已禁用", ResourceMonitorConfig{}, 1, 100, nil, true},
		{"采样失败不阻止启动", ResourceMonitorConfig{MinFreeMemoryMB: 512, CPULoadThreshold: 90}, 0, 0, errors.New("unsupported"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := fakeMonitor(tt.cfg, tt.availMB, tt.cpu, tt.sampleErr)
			ok, reason := rm.CheckAvailability()
			if ok != tt.expected {
				t.Errorf("CheckAvailability() = %v (%s), 期望 %v", ok, reason, tt.expected)
			}
			if !ok && reason == "" {
				t.Error("拒绝时应给出原因")
			}
		})
	}
}

func TestResourceMonitor_MemoryStatus(t *testing.T) {
	tests := []struct {
		availMB  uint64
		pressure string
	}{
		{100, "emergency"},
		{250, "critical"},
		{400, "warning"},
		{4096, "normal"},
	}
	for _, tt := range tests {
		status, err := fakeMonitor(ResourceMonitorConfig{}, tt.availMB, 0, nil).MemoryStatus()
		if err != nil {
			t.Fatalf("MemoryStatus() error = %v", err)
		}
		if status.MemoryPressure != tt.pressure || status.AvailableMB != tt.availMB {
			t.Errorf("可用%dMB: 压力等级 = %s, 期望 %s", tt.availMB, status.MemoryPressure, tt.pressure)
		}
	}
}
