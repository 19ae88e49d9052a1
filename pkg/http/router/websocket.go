package router

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gobwas/ws"
	"github.com/rovlab/terranav/pkg/concurrent"
	"github.com/rovlab/terranav/pkg/http/router/controllers"
	http_server "github.com/rovlab/terranav/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// newWebsocketServer serves long running planning requests on a
// dedicated port. each connection is handed to the worker pool, so at
// most WEBSOCKET_WORKERS solves stream progress concurrently while the
// rest wait in the queue.
func (api *API) newWebsocketServer(ctx context.Context, config http_server.Config,
	planningService controllers.PlanningService) *http.Server {
	viper.SetDefault("WEBSOCKET_WORKERS", 8)
	viper.SetDefault("WEBSOCKET_QUEUE_SIZE", 64)
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")

	api.pool = concurrent.NewWorkerPool[*controllers.User, error](
		viper.GetInt("WEBSOCKET_WORKERS"), viper.GetInt("WEBSOCKET_QUEUE_SIZE"))
	api.hub = controllers.NewHub(ctx, api.pool, planningService)

	api.pool.Start(func(user *controllers.User) error {
		defer api.hub.Remove(user)
		for {
			if err := user.ServePlan(); err != nil {
				return err
			}
		}
	})
	api.pool.DrainResults()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/plan", func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			api.log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		user := api.hub.Register(conn)
		if !api.pool.TryAddJob(user) {
			api.log.Warn("websocket planner pool saturated, dropping connection")
			api.hub.Remove(user)
			conn.Close()
		}
	})

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", config.WebsocketPort),
		Handler: mux,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},

		ReadHeaderTimeout: viper.GetDuration("HTTP_SERVER_READ_HEADER_TIMEOUT"),
	}
}

// closeWebsocket drops all clients, then waits for the workers to
// finish their interrupted solves before the listener goes away.
func (api *API) closeWebsocket(ctx context.Context, wsServer *http.Server) {
	api.hub.RemoveAllUser()
	api.pool.Close()
	api.pool.Wait()
	_ = wsServer.Shutdown(ctx)
}
