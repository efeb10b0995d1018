package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	blockinginadapter "focusguard/internal/modules/blocking/adapter/in"
	blockingoutadapter "focusguard/internal/modules/blocking/adapter/out"
	blockingservice "focusguard/internal/modules/blocking/service"
	blockingusecase "focusguard/internal/modules/blocking/usecase"
	engineinadapter "focusguard/internal/modules/engine/adapter/in"
	engineoutadapter "focusguard/internal/modules/engine/adapter/out"
	enginedto "focusguard/internal/modules/engine/dto"
	enginein "focusguard/internal/modules/engine/port/in"
	engineout "focusguard/internal/modules/engine/port/out"
	engineusecase "focusguard/internal/modules/engine/usecase"
	historyinadapter "focusguard/internal/modules/history/adapter/in"
	historyoutadapter "focusguard/internal/modules/history/adapter/out"
	historyservice "focusguard/internal/modules/history/service"
	historyusecase "focusguard/internal/modules/history/usecase"
	notifyinadapter "focusguard/internal/modules/notify/adapter/in"
	notifyoutadapter "focusguard/internal/modules/notify/adapter/out"
	notifyservice "focusguard/internal/modules/notify/service"
	notifyusecase "focusguard/internal/modules/notify/usecase"
	remindercliadapter "focusguard/internal/modules/reminder/adapter/in"
	reminderoutadapter "focusguard/internal/modules/reminder/adapter/out"
	reminderservice "focusguard/internal/modules/reminder/service"
	reminderusecase "focusguard/internal/modules/reminder/usecase"
	sessioninadapter "focusguard/internal/modules/session/adapter/in"
	sessionoutadapter "focusguard/internal/modules/session/adapter/out"
	sessionservice "focusguard/internal/modules/session/service"
	sessionusecase "focusguard/internal/modules/session/usecase"
	"focusguard/internal/platform/alarm"
	"focusguard/internal/platform/clock"
	"focusguard/internal/platform/config"
	"focusguard/internal/platform/id"
	"focusguard/internal/platform/logging"
	"focusguard/internal/platform/storage"
	uiapp "focusguard/internal/ui/app"
)

type App struct {
	BlockingCLI blockinginadapter.CLIHandler
	ReminderCLI remindercliadapter.CLIHandler
	SessionCLI  sessioninadapter.CLIHandler
	HistoryCLI  historyinadapter.CLIHandler
	NotifyCLI   notifyinadapter.CLIHandler
	EngineCLI   engineinadapter.CLIHandler

	cfg       config.Config
	logger    hclog.Logger
	db        *sql.DB
	engine    enginein.Usecase
	pump      *alarm.Pump
	ipcServer engineout.IPCServer
	ipcClient engineout.IPCClient
}

// New opens the shared database and wires every module. Close releases it.
func New(cfg config.Config, logger hclog.Logger) (*App, error) {
	logger = logging.OrDiscard(logger)
	clk := clock.SystemClock{}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	app, err := wire(cfg, logger, clk, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func wire(cfg config.Config, logger hclog.Logger, clk clock.Clock, db *sql.DB) (*App, error) {
	kv, err := storage.NewSQLiteKV(db, clk)
	if err != nil {
		return nil, fmt.Errorf("new kv store: %w", err)
	}
	alarms, err := alarm.NewSQLiteStore(db, clk)
	if err != nil {
		return nil, fmt.Errorf("new alarm store: %w", err)
	}
	rules, err := blockingoutadapter.NewSQLiteRuleEngine(db)
	if err != nil {
		return nil, fmt.Errorf("new rule engine: %w", err)
	}

	notifyUC := notifyusecase.NewInteractor(notifyservice.NewNotifyService(
		notifyoutadapter.NewFileManifestStore(cfg.NotifiersDir),
		notifyoutadapter.NewGRPCHost(logger.Named("plugin")),
		clk,
		logger.Named("notify"),
	))

	reminderUC := reminderusecase.NewInteractor(
		reminderservice.NewReminderService(alarms),
		reminderoutadapter.NewKVIntervalStore(kv),
		notifyUC,
		logger.Named("reminder"),
	)

	blockingUC := blockingusecase.NewInteractor(
		blockingservice.NewBlockingService(rules),
		blockingoutadapter.NewKVSettingsStore(kv),
		reminderUC,
		notifyUC,
		logger.Named("blocking"),
	)

	historyUC := historyusecase.NewInteractor(
		historyservice.NewHistoryService(clk, id.UUID{}, historyoutadapter.NewKVHistoryStore(kv)),
		historyoutadapter.NewMarkdownNoteWriter(),
		logger.Named("history"),
	)

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, alarms),
		sessionoutadapter.NewKVSessionStore(kv),
		blockingUC,
		historyUC,
		notifyUC,
		logger.Named("session"),
	)

	engineUC := engineusecase.NewInteractor(blockingUC, reminderUC, sessionUC, historyUC, logger.Named("engine"))

	return &App{
		BlockingCLI: blockinginadapter.NewCLIHandler(blockingUC),
		ReminderCLI: remindercliadapter.NewCLIHandler(reminderUC),
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		HistoryCLI:  historyinadapter.NewCLIHandler(historyUC),
		NotifyCLI:   notifyinadapter.NewCLIHandler(notifyUC),
		EngineCLI:   engineinadapter.NewCLIHandler(engineUC),
		cfg:         cfg,
		logger:      logger,
		db:          db,
		engine:      engineUC,
		pump:        alarm.NewPump(alarms, clk, cfg.AlarmTick, logger.Named("alarm")),
		ipcServer:   engineoutadapter.NewJSONRPCServer(),
		ipcClient:   engineoutadapter.NewJSONRPCClient(),
	}, nil
}

func (a *App) Config() config.Config {
	return a.cfg
}

func (a *App) Close() error {
	return a.db.Close()
}

// RunDaemon runs boot recovery, then the alarm pump and the socket server
// until ctx is done or either of them fails.
func (a *App) RunDaemon(ctx context.Context) error {
	boot, err := a.EngineCLI.Boot(ctx)
	if err != nil {
		a.logger.Error("boot recovery incomplete", "error", err)
	}
	a.logger.Info("daemon starting", "socket", a.cfg.SocketPath, "session", boot.SessionAction, "alarm_tick", a.cfg.AlarmTick)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pumpErr := make(chan error, 1)
	go func() {
		pumpErr <- a.pump.Run(runCtx, func(ctx context.Context, fired alarm.Alarm) {
			a.EngineCLI.FireAlarm(ctx, fired.Name)
		})
	}()
	ipcErr := make(chan error, 1)
	go func() {
		ipcErr <- a.ipcServer.Serve(runCtx, a.cfg.SocketPath, a.engine)
	}()

	select {
	case <-runCtx.Done():
		<-pumpErr
		<-ipcErr
		a.logger.Info("daemon stopped")
		return nil
	case err := <-pumpErr:
		cancel()
		<-ipcErr
		if err != nil {
			return fmt.Errorf("alarm pump: %w", err)
		}
		return nil
	case err := <-ipcErr:
		cancel()
		<-pumpErr
		if err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("ipc server: %w", err)
		}
		return nil
	}
}

// SendToDaemon posts msg to the running daemon over its socket.
func (a *App) SendToDaemon(ctx context.Context, msg enginedto.Message) (enginedto.Response, error) {
	return a.ipcClient.Send(ctx, a.cfg.SocketPath, msg)
}

func RunTUI(ctx context.Context, app *App) error {
	model := uiapp.NewModel(app.EngineCLI, app.HistoryCLI)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
