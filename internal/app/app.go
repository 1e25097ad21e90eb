package app

import (
	"net/http"
	"time"

	"club-app-go/internal/config"
	"club-app-go/internal/db"
	attendancedomain "club-app-go/internal/domain/attendance"
	financedomain "club-app-go/internal/domain/finance"
	locationdomain "club-app-go/internal/domain/location"
	memberdomain "club-app-go/internal/domain/member"
	presenterdomain "club-app-go/internal/domain/presenter"
	roomsdomain "club-app-go/internal/domain/rooms"
	suggestiondomain "club-app-go/internal/domain/suggestion"
	votingdomain "club-app-go/internal/domain/voting"
	warningdomain "club-app-go/internal/domain/warning"
	attendancerepo "club-app-go/internal/repository/postgres/attendance"
	financerepo "club-app-go/internal/repository/postgres/finance"
	locationrepo "club-app-go/internal/repository/postgres/location"
	memberrepo "club-app-go/internal/repository/postgres/member"
	presenterrepo "club-app-go/internal/repository/postgres/presenter"
	roomsrepo "club-app-go/internal/repository/postgres/rooms"
	suggestionrepo "club-app-go/internal/repository/postgres/suggestion"
	votingrepo "club-app-go/internal/repository/postgres/voting"
	warningrepo "club-app-go/internal/repository/postgres/warning"
	"club-app-go/internal/scheduler"
	"club-app-go/internal/transport/httpserver"
	"club-app-go/internal/transport/httpserver/handler"
	"club-app-go/pkg/clock"
	"club-app-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	sched      *scheduler.Scheduler
	log        logger.Logger
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	tz, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		return nil, err
	}
	clk := clock.System()

	members := memberdomain.NewService(memberrepo.NewPostgres(dbConn))
	locations := locationdomain.NewService(locationrepo.NewPostgres(dbConn))

	warnings := warningdomain.NewEngine(warningrepo.NewPostgres(dbConn), members, log)
	finance := financedomain.NewService(financerepo.NewPostgres(dbConn), warnings, clk, log)
	rooms := roomsdomain.NewService(roomsrepo.NewPostgres(dbConn))
	voting := votingdomain.NewService(votingrepo.NewPostgres(dbConn), finance, warnings, members, locations, clk, log)
	attendance := attendancedomain.NewService(
		attendancerepo.NewPostgres(dbConn),
		finance, warnings, voting, rooms, locations, members,
		clk, log,
	)
	presenters := presenterdomain.NewService(presenterrepo.NewPostgres(dbConn), finance, clk, log)
	suggestions := suggestiondomain.NewService(suggestionrepo.NewPostgres(dbConn))

	sched := scheduler.New(voting, warnings, presenters, tz, log)
	if cfg.Scheduler.Enabled {
		sched.Start()
	}

	handlers := handler.New(members, finance, warnings, attendance, voting, rooms, locations, presenters, suggestions, sched, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, members, log)
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		sched:      sched,
		log:        log,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.cfg.Scheduler.Enabled {
		a.sched.Stop()
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
