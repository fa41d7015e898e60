package health

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"bybit_bot/internal/modules/config"
	"bybit_bot/internal/modules/health/service"
	"bybit_bot/internal/runner"
	"bybit_bot/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type Config struct {
	Addr string // например ":8080"
}

func NewConfig(cfg *config.Config) Config {
	return Config{Addr: net.JoinHostPort(cfg.Service.Host, strconv.Itoa(cfg.Service.AdminPort))}
}

// SessionCounter: сколько мониторов сейчас работает.
type SessionCounter interface {
	Active() int
}

func NewMux(state *service.State, sessions SessionCounter) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if !state.Ready() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		body, err := sonic.Marshal(map[string]any{
			"ready":          state.Ready(),
			"uptimeSec":      int64(state.Uptime().Seconds()),
			"activeSessions": sessions.Active(),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

func RunHTTP(lc fx.Lifecycle, cfg Config, mux *http.ServeMux, state *service.State) {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return err
			}
			go func() {
				if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
					logger.Error("health: %v", err)
				}
			}()
			// модуль подключается последним: к этому моменту всё остальное стартовало
			state.SetReady(true)
			logger.Info("health: слушаю %s", cfg.Addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			state.SetReady(false)
			return srv.Shutdown(ctx)
		},
	})
}

func Module() fx.Option {
	return fx.Module("health",
		fx.Provide(
			service.NewState,
			NewConfig,
			NewMux,
			func(m *runner.Manager) SessionCounter { return m },
		),
		fx.Invoke(RunHTTP),
	)
}
