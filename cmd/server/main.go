package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/ktap111/kt-stock-game/internal/config"
	"github.com/ktap111/kt-stock-game/internal/httpx"
	"github.com/ktap111/kt-stock-game/internal/provider"
	"github.com/ktap111/kt-stock-game/internal/provider/static"
	"github.com/ktap111/kt-stock-game/internal/provider/yahoo"
	"github.com/ktap111/kt-stock-game/internal/quote"
)

type stocksResponse struct {
	Stocks []quote.Summary `json:"stocks"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func main() {
	cfgPath := os.Getenv("CONFIG_FILE")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	p := buildProvider(cfg)
	svc := quote.NewService(p, cfg.Quotes.MaxConcurrency)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", handleRoot)
	mux.HandleFunc("GET /api/stocks", func(w http.ResponseWriter, r *http.Request) {
		handleGetStocks(w, r, svc, cfg.Quotes.MaxSymbols)
	})
	mux.HandleFunc("GET /api/stock/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		handleGetStockDetail(w, r, svc)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           withCORS(withGzip(recoverPanic(mux))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on :%s (provider=%s)", cfg.Server.Port, p.Name())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func buildProvider(cfg config.Config) provider.Provider {
	if cfg.Provider == "static" {
		return static.New()
	}
	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	if cfg.Yahoo.UserAgent != "" {
		httpClient.UserAgent = cfg.Yahoo.UserAgent
	}
	return yahoo.New(yahoo.Config{
		URL:       cfg.Yahoo.Endpoint,
		Modules:   cfg.Yahoo.Modules,
		SymbolMap: cfg.Yahoo.SymbolMap,
	}, httpClient)
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Stock Trading Game API is running"})
}

func handleGetStocks(w http.ResponseWriter, r *http.Request, svc *quote.Service, maxSymbols int) {
	symbols := quote.ParseSymbols(r.URL.Query().Get("symbols"))
	if maxSymbols > 0 && len(symbols) > maxSymbols {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Too many symbols (max %d)", maxSymbols))
		return
	}

	summaries, err := svc.Summaries(r.Context(), symbols)
	if err != nil {
		// only the empty-input case; per-symbol failures degrade in place
		writeError(w, http.StatusBadRequest, "No symbols provided")
		return
	}
	log.Printf("fetched stocks: %v", symbols)
	writeJSON(w, http.StatusOK, stocksResponse{Stocks: summaries})
}

func handleGetStockDetail(w http.ResponseWriter, r *http.Request, svc *quote.Service) {
	symbol := strings.ToUpper(strings.TrimSpace(r.PathValue("symbol")))
	log.Printf("fetching detail for: %s", symbol)

	detail, err := svc.Detail(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, quote.ErrNoPriceData) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("No price data found for %s", symbol))
			return
		}
		log.Printf("provider error for %s: %v", symbol, err)
		writeError(w, http.StatusBadGateway, fmt.Sprintf("Failed to fetch data for %s", symbol))
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// withCORS allows all origins, methods and headers, with credentials, and
// answers preflight requests.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withGzip compresses the response when the client supports gzip.
func withGzip(next http.Handler) http.Handler {
	var gzPool = sync.Pool{New: func() any {
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
		next.ServeHTTP(gzipResponseWriter{ResponseWriter: w, Writer: gz}, r)
	})
}

type gzipResponseWriter struct {
	http.ResponseWriter
	Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
	return g.Writer.Write(b)
}

// recoverPanic protects handlers from panics.
func recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
