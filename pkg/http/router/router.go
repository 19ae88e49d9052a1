package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rovlab/terranav/pkg/concurrent"
	"github.com/rovlab/terranav/pkg/http/router/controllers"
	router_helper "github.com/rovlab/terranav/pkg/http/router/routerhelper"
	http_server "github.com/rovlab/terranav/pkg/http/server"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"

	_ "github.com/swaggo/http-swagger"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "net/http/pprof"
)

type API struct {
	log  *zap.Logger
	hub  *controllers.Hub
	pool *concurrent.WorkerPool[*controllers.User, error]
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

//	@title			Terranav API
//	@version		1.0
//	@description	Traversal cost aware path planning server for mobile robots on discretized terrain maps.

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	log *zap.Logger,

	useRateLimit bool,
	planningService controllers.PlanningService,
) error {
	log.Info("Run httprouter API")

	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)

	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)

	group := router_helper.NewRouteGroup(router, "/api")

	planningRoutes := controllers.New(planningService, log)

	planningRoutes.Routes(group)

	errChan := make(chan error, 1)

	wsServer := api.newWebsocketServer(ctx, config, planningService)
	go func() {
		api.log.Info(fmt.Sprintf("websocket progress stream run on port %d", config.WebsocketPort))
		if err := wsServer.ListenAndServe(); err != nil {
			errChan <- err
		}
	}()

	var mwChain []alice.Constructor
	if useRateLimit {
		mwChain = append(mwChain, corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
			RealIP, Heartbeat("healthz"), Logger(log), Labels, Limit)
	} else {
		mwChain = append(mwChain, corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
			RealIP, Heartbeat("healthz"), Logger(log), Labels)
	}
	mainMwChain := alice.New(mwChain...).Then(router)

	srv := http_server.New(ctx, mainMwChain, config)
	log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		log.Error("Websocket error, shutting down server", zap.Error(err))
		_ = srv.Shutdown(ctx)
		api.closeWebsocket(ctx, wsServer)
		return err
	case err := <-serverErr:
		log.Info("HTTP server stopped", zap.Error(err))
		api.closeWebsocket(ctx, wsServer)
		return err

	case <-ctx.Done():
		log.Info("Context canceled, shutting down server")
		_ = srv.Shutdown(context.Background())
		api.closeWebsocket(context.Background(), wsServer)
		return ctx.Err()
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
