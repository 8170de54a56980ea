package main

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"

	"github.com/hanwen/go-ptpip/ptpip"
)

// config.toml keys. Sizes accept humanized values like "16MiB".
type fileConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Name        string `toml:"name"`
	GUID        string `toml:"guid"`
	Timeout     string `toml:"timeout"`
	MaxPayload  string `toml:"max_payload"`
	ChunkSize   string `toml:"chunk_size"`
	DebugPTPIP  bool   `toml:"debug_ptpip"`
	DebugData   bool   `toml:"debug_data"`
	MonitorAddr string `toml:"monitor_addr"`
	LogLevel    string `toml:"log_level"`
}

type appConfig struct {
	Host        string
	Port        int
	MonitorAddr string
	LogLevel    string
	PTPIP       ptpip.Config
}

func defaultAppConfig() appConfig {
	return appConfig{
		Port:        ptpip.DefaultPort,
		MonitorAddr: "localhost:8080",
		LogLevel:    "info",
		PTPIP:       ptpip.DefaultConfig(),
	}
}

// Addr is the responder's host:port.
func (c *appConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// loadConfigFile overlays the keys defined in path onto cfg.
func loadConfigFile(path string, cfg *appConfig) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("host") {
		cfg.Host = strings.TrimSpace(raw.Host)
	}
	if meta.IsDefined("port") {
		cfg.Port = raw.Port
	}
	if meta.IsDefined("name") {
		cfg.PTPIP.Name = raw.Name
	}
	if meta.IsDefined("guid") {
		g, err := ptpip.ParseGUID(strings.TrimSpace(raw.GUID))
		if err != nil {
			return fmt.Errorf("load config: guid: %w", err)
		}
		cfg.PTPIP.GUID = g
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("load config: timeout: %w", err)
		}
		cfg.PTPIP.Timeout = d
	}
	if meta.IsDefined("max_payload") {
		n, err := humanize.ParseBytes(raw.MaxPayload)
		if err != nil {
			return fmt.Errorf("load config: max_payload: %w", err)
		}
		if n > ptpip.MaxPayloadSize {
			return fmt.Errorf("load config: max_payload %s exceeds %s",
				humanize.IBytes(n), humanize.IBytes(ptpip.MaxPayloadSize))
		}
		cfg.PTPIP.Limits.MaxPayload = int64(n)
	}
	if meta.IsDefined("chunk_size") {
		n, err := humanize.ParseBytes(raw.ChunkSize)
		if err != nil {
			return fmt.Errorf("load config: chunk_size: %w", err)
		}
		if n == 0 || n > ptpip.MaxPayloadSize-4 {
			return fmt.Errorf("load config: chunk_size %d out of range", n)
		}
		cfg.PTPIP.ChunkSize = int(n)
	}
	if meta.IsDefined("debug_ptpip") {
		cfg.PTPIP.Debug.PTPIP = raw.DebugPTPIP
	}
	if meta.IsDefined("debug_data") {
		cfg.PTPIP.Debug.Data = raw.DebugData
	}
	if meta.IsDefined("monitor_addr") {
		cfg.MonitorAddr = strings.TrimSpace(raw.MonitorAddr)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	return nil
}
