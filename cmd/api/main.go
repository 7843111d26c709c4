package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"facilitydesk/internal/adapter/guard"
	httpadp "facilitydesk/internal/adapter/http"
	"facilitydesk/internal/adapter/middleware"
	"facilitydesk/internal/adapter/notify"
	"facilitydesk/internal/adapter/repository/mysql"
	"facilitydesk/internal/adapter/upload"
	"facilitydesk/internal/config"
	"facilitydesk/internal/infrastructure/cache"
	"facilitydesk/internal/infrastructure/db"
	"facilitydesk/internal/usecase/query"
	"facilitydesk/internal/usecase/workflow"
	"facilitydesk/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.Env)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connect failed")
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}

	complaints := mysql.NewComplaintRepository(gdb)
	resolutions := mysql.NewResolutionRepository(gdb)
	users := mysql.NewUserRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	dispatcher := notify.NewDispatcher(users, notify.NewPushSender(cfg.PushEndpoint, cfg.PushServerKey), log)
	defer dispatcher.Wait()

	wf := workflow.NewUsecase(
		uow,
		complaints,
		users,
		guard.NewRedisGuard(rdb, cfg.GuardLockTTL, log),
		upload.NewHTTPUploader(cfg.UploadEndpoint, cfg.UploadAPIKey),
		dispatcher,
		cfg.DuplicateWindow,
	)
	q := query.NewUsecase(complaints, resolutions, users)

	h := httpadp.NewHandler(cfg.Env)
	ch := httpadp.NewComplaintHandler(wf, q)
	wh := httpadp.NewWorkflowHandler(wf)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.WithAuth(cfg.JWTSecret, users))

	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.POST("/complaints", ch.Submit) // anonymous occupants

	authed := api.Group("", middleware.RequireAuth)
	authed.GET("/complaints", ch.List)
	authed.GET("/complaints/:complaint_id", ch.Get)
	authed.POST("/complaints/:complaint_id/assign", wh.Assign)
	authed.POST("/complaints/:complaint_id/start", wh.StartWork)
	authed.POST("/complaints/:complaint_id/resolution", wh.SubmitResolution)
	authed.POST("/complaints/:complaint_id/reopen", wh.Reopen)
	authed.POST("/resolutions/:resolution_id/approve", wh.Approve)
	authed.POST("/resolutions/:resolution_id/reject", wh.Reject)
	authed.GET("/technicians", ch.ListTechnicians)
	authed.GET("/dashboard/overview", ch.DashboardOverview)

	addr := ":" + cfg.AppPort
	log.Info().Str("addr", addr).Msg("api listening")
	if err := e.Start(addr); err != nil {
		// Not Fatal: os.Exit would skip the dispatcher drain above.
		log.Error().Err(err).Msg("server stopped")
	}
}
