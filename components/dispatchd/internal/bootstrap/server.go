package bootstrap

import (
	"github.com/LerianStudio/mdispatch/common"
	"github.com/LerianStudio/mdispatch/common/mlog"
	chttp "github.com/LerianStudio/mdispatch/common/net/http"
	in "github.com/LerianStudio/mdispatch/components/dispatchd/internal/adapters/http/in"
	"github.com/LerianStudio/mdispatch/pkg/msubsystem"
	"github.com/LerianStudio/mdispatch/pkg/msystem"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Server runs the demo HTTP gateway in front of one MessageSystem.
type Server struct {
	app           *fiber.App
	serverAddress string
	logger        mlog.Logger
	telemetry     *chttp.TelemetryMiddleware
}

// NewServer builds the fiber app, wires the ambient middleware stack
// (correlation ID, CORS, request logging, tracing) and mounts the
// dispatch gateway's routes.
func NewServer(cfg *Config, logger mlog.Logger, ms *msystem.MessageSystem, gateway *msubsystem.Subsystem) *Server {
	app := fiber.New()

	telemetry := chttp.NewTelemetryMiddleware(cfg.OtelServiceName)

	app.Use(chttp.WithCorrelationID())
	app.Use(chttp.WithCORS())
	app.Use(chttp.WithHTTPLogging(chttp.WithCustomLogger(logger)))
	app.Use(telemetry.WithTelemetry)

	app.Get("/health", chttp.Ping)
	app.Get("/version", chttp.Version(ApplicationName))

	handler := in.NewDispatchHandler(ms, gateway)
	handler.Register(app, "/v1")

	app.Use(telemetry.EndTracingSpans)

	return &Server{
		app:           app,
		serverAddress: cfg.ServerAddress,
		logger:        logger,
		telemetry:     telemetry,
	}
}

// Run implements common.App: it listens until the process is stopped or
// the listener fails.
func (s *Server) Run(_ *common.Launcher) error {
	if err := s.app.Listen(s.serverAddress); err != nil {
		return errors.Wrap(err, "failed to run the dispatch gateway server")
	}

	return nil
}
