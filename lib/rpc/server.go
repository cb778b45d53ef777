package rpc

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter"
	limiterstdlib "github.com/ulule/limiter/drivers/middleware/stdlib"
	"github.com/ulule/limiter/drivers/store/memory"

	"boscoin.io/council/lib/collective"
	"boscoin.io/council/lib/common"
	"boscoin.io/council/lib/storage"
)

var log logging.Logger = logging.New("module", "rpc")

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

const (
	UrlPathMetric string = "/metrics"

	DefaultShutdownTimeout = 5 * time.Second
)

// Server serves the `Council` JSON-RPC service at the path of the endpoint
// and the prometheus metrics at `/metrics`.
type Server struct {
	endpoint *common.Endpoint
	engine   *collective.Engine
	st       *storage.LevelDBBackend

	rate   *limiter.Rate
	server *http.Server
}

// NewServer makes the server. `rateLimit` is the limiter format, like
// `100-S`; empty string disables the limit.
func NewServer(
	endpoint *common.Endpoint,
	engine *collective.Engine,
	st *storage.LevelDBBackend,
	rateLimit string,
) (*Server, error) {
	s := &Server{
		endpoint: endpoint,
		engine:   engine,
		st:       st,
	}

	if len(rateLimit) > 0 {
		rate, err := limiter.NewRateFromFormatted(rateLimit)
		if err != nil {
			return nil, err
		}
		s.rate = &rate
	}

	return s, nil
}

func (s *Server) Ready() *mux.Router {
	router := mux.NewRouter()

	path := s.endpoint.Path
	if len(path) < 1 {
		path = "/"
	}
	router.Handle(path, newRPCServer(s.engine, s.st)).Methods("POST", "OPTIONS")
	router.Handle(UrlPathMetric, promhttp.Handler()).Methods("GET")

	return router
}

// Handler is `Ready()` behind the rate limit, CORS and the access log.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.Ready()

	if s.rate != nil {
		lmt := limiter.New(memory.NewStore(), *s.rate)
		handler = limiterstdlib.NewMiddleware(lmt).Handler(handler)
	}

	handler = ghandlers.CORS(
		ghandlers.AllowedOrigins([]string{"*"}),
		ghandlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"}),
	)(handler)

	return ghandlers.CombinedLoggingHandler(logWriter{}, handler)
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    s.endpoint.BindAddr(),
		Handler: s.Handler(),
	}

	log.Info("starting server", "endpoint", s.endpoint)

	err := func() error {
		if strings.ToLower(s.endpoint.Scheme) == "http" {
			return s.server.ListenAndServe()
		}

		query := (*url.URL)(s.endpoint).Query()
		return s.server.ListenAndServeTLS(query.Get("TLSCertFile"), query.Get("TLSKeyFile"))
	}()

	if err == http.ErrServerClosed {
		return nil
	}

	return err
}

func (s *Server) Stop() {
	if s.server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", "error", err)
	}
}

// logWriter writes the access log lines to the logger.
type logWriter struct{}

func (logWriter) Write(b []byte) (int, error) {
	log.Debug(string(bytes.TrimSpace(b)), "type", "access")
	return len(b), nil
}
