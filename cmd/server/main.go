package main

import (
    "context"
    "encoding/json"
    "net/http"
    "os"
    "os/signal"
    "strings"
    "syscall"
    "time"
    "compress/gzip"
    "io"
    "sync"

    "github.com/joho/godotenv"

    "marketdata/internal/config"
    "marketdata/internal/httpx"
    "marketdata/internal/logger"
    "marketdata/internal/provider"
    twelvedatapkg "marketdata/internal/provider/twelvedata"
    "marketdata/internal/provider/twelvedataadapter"
)

type quotesResponse struct {
    Quotes []provider.Quote `json:"quotes"`
}

func main() {
    _ = godotenv.Load()
    logger.Init()
    log := logger.L()

    // Config
    cfgPath := os.Getenv("CONFIG_FILE")
    cfg, err := config.Load(cfgPath)
    if err != nil { log.Fatal().Err(err).Msg("config") }
    port := cfg.Server.Port
    timeoutSec := cfg.Server.RequestTimeoutSec

    if cfg.TwelveData.APIKey == "" {
        log.Fatal().Msg("no API key configured; set TWELVE_DATA_API_KEY or config.json")
    }

    httpClient := httpx.New(time.Duration(timeoutSec) * time.Second)

    options := []twelvedatapkg.TwelveDataAPIClientOption{
        twelvedatapkg.WithHTTPClient(httpClient),
        twelvedatapkg.WithBaseURL(cfg.TwelveData.BaseURL),
    }
    if cfg.TwelveData.HeaderAuth {
        options = append(options, twelvedatapkg.WithHeaderAuth())
    }
    tdClient, err := twelvedatapkg.NewTwelveDataAPIClient(cfg.TwelveData.APIKey, options...)
    if err != nil { log.Fatal().Err(err).Msg("twelvedata client") }

    providers := []provider.Provider{
        twelvedataadapter.New(twelvedataadapter.Config{
            Interval: twelvedatapkg.Interval(cfg.TwelveData.Interval),
        }, tdClient),
    }

    mux := http.NewServeMux()
    mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    })
    mux.HandleFunc("/api/quotes", func(w http.ResponseWriter, r *http.Request) {
        switch r.Method {
        case http.MethodGet:
            handleGetQuotes(w, r, providers)
        case http.MethodPost:
            handlePostQuotes(w, r, providers)
        default:
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
        }
    })

    srv := &http.Server{
        Addr:              ":" + port,
        Handler:           withJSONHeaders(withGzip(recoverPanic(limitBody(mux)))),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        WriteTimeout:      20 * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    go func() {
        log.Info().Str("port", port).Msg("server listening")
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatal().Err(err).Msg("server")
        }
    }()

    // graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = srv.Shutdown(shutdownCtx)
}

func handleGetQuotes(w http.ResponseWriter, r *http.Request, providers []provider.Provider) {
    q := r.URL.Query().Get("symbols")
    if strings.TrimSpace(q) == "" {
        http.Error(w, "missing symbols query param", http.StatusBadRequest)
        return
    }
    symbols := splitCSV(q)
    if len(symbols) > 100 {
        http.Error(w, "too many symbols (max 100)", http.StatusBadRequest)
        return
    }
    writeQuotes(w, r.Context(), providers, symbols)
}

type postBody struct {
    Symbols []string `json:"symbols"`
}

func handlePostQuotes(w http.ResponseWriter, r *http.Request, providers []provider.Provider) {
    var b postBody
    dec := json.NewDecoder(r.Body)
    dec.DisallowUnknownFields()
    if err := dec.Decode(&b); err != nil {
        http.Error(w, "invalid JSON body", http.StatusBadRequest)
        return
    }
    if len(b.Symbols) == 0 {
        http.Error(w, "symbols cannot be empty", http.StatusBadRequest)
        return
    }
    if len(b.Symbols) > 100 {
        http.Error(w, "too many symbols (max 100)", http.StatusBadRequest)
        return
    }
    writeQuotes(w, r.Context(), providers, b.Symbols)
}

func writeQuotes(w http.ResponseWriter, rctx context.Context, providers []provider.Provider, symbols []string) {
    ctx, cancel := context.WithTimeout(rctx, 15*time.Second)
    defer cancel()
    // fan-out to providers concurrently; collect partial results
    type result struct { quotes []provider.Quote; err error }
    ch := make(chan result, len(providers))
    for _, p := range providers {
        p := p
        go func() {
            qs, err := p.Fetch(ctx, symbols)
            ch <- result{qs, err}
        }()
    }
    var all []provider.Quote
    var errs []string
    for i := 0; i < len(providers); i++ {
        r := <-ch
        if r.err != nil { errs = append(errs, r.err.Error()); continue }
        all = append(all, r.quotes...)
    }
    if len(all) == 0 && len(errs) > 0 {
        http.Error(w, strings.Join(errs, "; "), http.StatusBadGateway)
        return
    }
    resp := quotesResponse{Quotes: all}
    w.WriteHeader(http.StatusOK)
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    enc.Encode(resp)
}

func withJSONHeaders(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json; charset=utf-8")
        // Basic CORS for browser usage; adjust as needed.
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
        w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
        if r.Method == http.MethodOptions {
            w.WriteHeader(http.StatusNoContent)
            return
        }
        next.ServeHTTP(w, r)
    })
}

// withGzip compresses response when client supports gzip.
func withGzip(next http.Handler) http.Handler {
    var gzPool = sync.Pool{New: func() any {
        // Prefer best speed to reduce CPU usage since payloads are JSON
        w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
        return w
    }}
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
            next.ServeHTTP(w, r)
            return
        }
        gz := gzPool.Get().(*gzip.Writer)
        gz.Reset(w)
        defer func() {
            _ = gz.Close()
            gz.Reset(io.Discard)
            gzPool.Put(gz)
        }()
        w.Header().Set("Content-Encoding", "gzip")
        w.Header().Add("Vary", "Accept-Encoding")
        gw := gzipResponseWriter{ResponseWriter: w, Writer: gz}
        next.ServeHTTP(gw, r)
    })
}

type gzipResponseWriter struct {
    http.ResponseWriter
    Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
    return g.Writer.Write(b)
}

// limitBody caps request body size to avoid memory abuse.
func limitBody(next http.Handler) http.Handler {
    const maxBody = 1 << 20 // 1MB
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.Method == http.MethodPost && r.Body != nil {
            r.Body = http.MaxBytesReader(w, r.Body, maxBody)
        }
        next.ServeHTTP(w, r)
    })
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                http.Error(w, "internal server error", http.StatusInternalServerError)
            }
        }()
        next.ServeHTTP(w, r)
    })
}

func splitCSV(s string) []string {
    parts := strings.Split(s, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        p = strings.TrimSpace(p)
        if p != "" { out = append(out, p) }
    }
    return out
}
