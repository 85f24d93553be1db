package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "strings"
)

type Server struct {
    Port              string `json:"port"`
    RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type TwelveData struct {
    APIKey     string `json:"api_key"`
    BaseURL    string `json:"base_url"`
    Interval   string `json:"interval"`
    HeaderAuth bool   `json:"header_auth"`
}

type Config struct {
    Server     Server     `json:"server"`
    TwelveData TwelveData `json:"twelvedata"`
}

func Default() Config {
    return Config{
        Server: Server{Port: "8080", RequestTimeoutSec: 10},
        TwelveData: TwelveData{
            BaseURL:  "https://api.twelvedata.com",
            Interval: "1day",
        },
    }
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. Environment variables override select fields for secrecy.
func Load(path string) (Config, error) {
    cfg := Default()
    if path == "" {
        if _, err := os.Stat("config.json"); err == nil {
            path = "config.json"
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := json.Unmarshal(b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }
    applyEnv(&cfg)
    return cfg, nil
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
    if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Server.RequestTimeoutSec = x }
    }
    if v := os.Getenv("TWELVE_DATA_API_KEY"); v != "" { cfg.TwelveData.APIKey = v }
    if v := os.Getenv("TWELVE_DATA_BASE_URL"); v != "" { cfg.TwelveData.BaseURL = v }
    if v := os.Getenv("TWELVE_DATA_INTERVAL"); v != "" { cfg.TwelveData.Interval = v }
    if v := os.Getenv("TWELVE_DATA_HEADER_AUTH"); v != "" {
        switch strings.ToLower(v) {
        case "1","true","yes","y": cfg.TwelveData.HeaderAuth = true
        case "0","false","no","n": cfg.TwelveData.HeaderAuth = false
        }
    }
}
