package commands

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/hypermedia/internal/config"
	"github.com/conduit-lang/hypermedia/internal/logging"
	"github.com/conduit-lang/hypermedia/internal/sample"
	"github.com/conduit-lang/hypermedia/internal/web/middleware"
	"github.com/conduit-lang/hypermedia/internal/web/response"
	"github.com/conduit-lang/hypermedia/internal/web/router"
	"github.com/conduit-lang/hypermedia/internal/web/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sample people server",
		Long: `Run the sample people server.

Resources are served as UBER documents, action endpoints as UBER links
or HTML forms depending on the Accept header.

Examples:
  hypermedia serve
  hypermedia serve --port 9090
  hypermedia serve --config ./config/hypermedia.yml`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides server.port)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	handler, _ := buildHandler(cfg, logger)

	srvConfig := server.DefaultConfig(handler)
	srvConfig.Address = cfg.Server.Addr()
	srvConfig.ReadTimeout = cfg.Server.ReadTimeout
	srvConfig.WriteTimeout = cfg.Server.WriteTimeout
	srvConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	srvConfig.Logger = logger

	srv, err := server.New(srvConfig)
	if err != nil {
		return err
	}
	srv.OnShutdown(func(context.Context) error {
		// stderr and stdout cannot be synced on every platform
		_ = logger.Sync()
		return nil
	})

	if err := srv.Listen(); err != nil {
		return err
	}
	color.New(color.FgGreen, color.Bold).Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", srv.Addr())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// buildHandler assembles the sample server: the middleware chain around
// a router holding the sample routes. Unknown routes and methods are
// answered with UBER error messages.
func buildHandler(cfg *config.Config, logger *zap.Logger) (http.Handler, *router.Router) {
	renderer := response.NewRenderer(response.RendererConfig{
		PrettyPrint: cfg.Render.Pretty,
	})

	r := router.NewRouter()
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		renderer.Error(w, req, response.NotFound(""))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		renderer.Error(w, req, response.NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed"))
	})

	sample.NewController(sample.NewMemoryAccess(), renderer, cfg.Render.BaseURL).Register(r)

	chain := middleware.Default(middleware.Config{
		Logger:         logger,
		RequestTimeout: cfg.Server.RequestTimeout,
	})
	return chain.Then(r), r
}
