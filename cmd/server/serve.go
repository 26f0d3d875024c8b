package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/yukikurage/team-management-api/internal/database"
	"github.com/yukikurage/team-management-api/internal/handlers"
	"github.com/yukikurage/team-management-api/internal/mailer"
	"github.com/yukikurage/team-management-api/internal/metrics"
	"github.com/yukikurage/team-management-api/internal/middleware"
	"github.com/yukikurage/team-management-api/internal/repository"
	"github.com/yukikurage/team-management-api/internal/services"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		if !skipMigrate {
			if err := database.Migrate(log); err != nil {
				return err
			}
		}

		gin.SetMode(cfg.GinMode)
		r := gin.New()
		r.Use(gin.Recovery())
		r.Use(middleware.RequestLogger(log))
		if cfg.MetricsEnabled {
			r.Use(metrics.Middleware())
			r.GET(cfg.MetricsPath, metrics.Handler())
		}

		store, err := middleware.NewSessionStore(cfg)
		if err != nil {
			return err
		}
		r.Use(middleware.Sessions(store))

		db := database.GetDB()
		employeeRepo := repository.NewEmployeeRepository(db)
		positionRepo := repository.NewPositionRepository(db)
		taskTypeRepo := repository.NewTaskTypeRepository(db)
		tagRepo := repository.NewTaskTagRepository(db)
		teamRepo := repository.NewTeamRepository(db)
		projectRepo := repository.NewProjectRepository(db)
		taskRepo := repository.NewTaskRepository(db)

		// Leave the generator as an untyped nil so the service reports it
		// as not configured.
		var generator services.TaskGenerator
		if cfg.OpenAIAPIKey != "" {
			generator = services.NewAIService(cfg.OpenAIAPIKey)
		} else {
			log.Warn("OPENAI_API_KEY is not set, AI task generation is disabled")
		}

		handlers.RegisterRoutes(r, handlers.Services{
			Auth:      services.NewAuthService(employeeRepo),
			Employees: services.NewEmployeeService(employeeRepo, positionRepo, log),
			Invitations: services.NewInvitationService(
				repository.NewInvitationRepository(db),
				employeeRepo,
				positionRepo,
				mailer.NewSMTPMailer(cfg.SMTP, log),
				cfg.BaseURL,
				log,
			),
			Teams:     services.NewTeamService(teamRepo, employeeRepo),
			Projects:  services.NewProjectService(projectRepo, teamRepo, taskRepo),
			Tasks:     services.NewTaskService(taskRepo, employeeRepo, taskTypeRepo, tagRepo, generator),
			Positions: services.NewPositionService(positionRepo),
			TaskTypes: services.NewTaskTypeService(taskTypeRepo),
			TaskTags:  services.NewTaskTagService(tagRepo),
			Dashboard: services.NewDashboardService(projectRepo, teamRepo),
		}, cfg.IsProduction())

		srv := &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.WithField("addr", srv.Addr).Info("Server starting")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not run migrations before serving")
}
