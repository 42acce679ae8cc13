package config

import "time"

type Config struct {
	UpdateIntervalSeconds int               `json:"update_interval_seconds"`
	ServiceLimit          int               `json:"service_limit"`
	DiskPath              string            `json:"disk_path"`
	CPUThreshold          float64           `json:"cpu_threshold"`
	MemThreshold          float64           `json:"mem_threshold"`
	ActiveWebhook         string            `json:"active_webhook"`
	Webhooks              map[string]string `json:"webhooks"`
}

func (c *Config) Interval() time.Duration {
	if c.UpdateIntervalSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.UpdateIntervalSeconds) * time.Second
}
