package bootstrap

import (
	"database/sql"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	exportinadapter "readenvy/internal/modules/export/adapter/in"
	exportoutadapter "readenvy/internal/modules/export/adapter/out"
	exportservice "readenvy/internal/modules/export/service"
	exportusecase "readenvy/internal/modules/export/usecase"
	goalsinadapter "readenvy/internal/modules/goals/adapter/in"
	goalsoutadapter "readenvy/internal/modules/goals/adapter/out"
	goalsservice "readenvy/internal/modules/goals/service"
	goalsusecase "readenvy/internal/modules/goals/usecase"
	libraryinadapter "readenvy/internal/modules/library/adapter/in"
	libraryoutadapter "readenvy/internal/modules/library/adapter/out"
	librarydomain "readenvy/internal/modules/library/domain"
	libraryservice "readenvy/internal/modules/library/service"
	libraryusecase "readenvy/internal/modules/library/usecase"
	progressinadapter "readenvy/internal/modules/progress/adapter/in"
	progressoutadapter "readenvy/internal/modules/progress/adapter/out"
	progressservice "readenvy/internal/modules/progress/service"
	progressusecase "readenvy/internal/modules/progress/usecase"
	readerinadapter "readenvy/internal/modules/reader/adapter/in"
	readeroutadapter "readenvy/internal/modules/reader/adapter/out"
	readerdto "readenvy/internal/modules/reader/dto"
	readerservice "readenvy/internal/modules/reader/service"
	readerusecase "readenvy/internal/modules/reader/usecase"
	"readenvy/internal/platform/clock"
	"readenvy/internal/platform/config"
	"readenvy/internal/platform/id"
	"readenvy/internal/platform/sqlitedb"
	uiapp "readenvy/internal/ui/app"
	readerview "readenvy/internal/ui/views/reader"
)

// watchSettle is how long a dropped file must stay quiet before import.
const watchSettle = 2 * time.Second

type App struct {
	Config      config.Config
	LibraryCLI  libraryinadapter.CLIHandler
	ProgressCLI progressinadapter.CLIHandler
	GoalsCLI    goalsinadapter.CLIHandler
	ReaderCLI   readerinadapter.CLIHandler
	ReaderTUI   readerinadapter.TUIHandler
	ExportCLI   exportinadapter.CLIHandler
	Watcher     *libraryinadapter.FolderWatcher

	db     *sql.DB
	reader *readerservice.ReaderService
	log    hclog.Logger
}

func New(cfg config.Config, logger hclog.Logger) (*App, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	db, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	txm := sqlitedb.NewTxManager(db)
	clk := clock.SystemClock{Location: cfg.Location}
	ids := id.UUID{}

	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(
		clk, ids,
		progressoutadapter.NewSQLiteBookProgressStore(db),
		progressoutadapter.NewSQLiteSessionStore(db),
		txm, logger,
	))

	goalsUC := goalsusecase.NewInteractor(goalsservice.NewGoalService(
		clk, ids,
		goalsoutadapter.NewSQLiteGoalStore(db),
		goalsoutadapter.NewSQLiteStreakStore(db),
		goalsoutadapter.NewProgressReadingLog(progressUC),
		txm, cfg.Goals.DefaultDailyPages, logger,
	))

	libraryUC := libraryusecase.NewInteractor(libraryservice.NewBookService(
		clk, ids,
		libraryoutadapter.NewSQLiteBookStore(db),
		libraryoutadapter.NewPDFInspector(),
		libraryoutadapter.NewGoalsPurgeAdapter(goalsUC),
		txm,
		librarydomain.ImportLimits{MaxBytes: cfg.Import.MaxBytes, WarnBytes: cfg.Import.WarnBytes},
		logger,
	))

	readerSvc := readerservice.NewReaderService(
		readeroutadapter.NewLibraryBookAdapter(libraryUC),
		readeroutadapter.NewPDFRenderer(),
		logger,
	)
	tracker := readerservice.NewTracker(
		clk,
		readeroutadapter.NewProgressAdapter(progressUC),
		readeroutadapter.NewGoalsAdapter(goalsUC),
		cfg.Reader.Debounce,
		logger,
	)
	readerUC := readerusecase.NewInteractor(readerSvc, tracker)

	exportProgress := exportoutadapter.NewProgressAdapter(progressUC)
	exportUC := exportusecase.NewInteractor(exportservice.NewExportService(
		clk,
		exportoutadapter.NewLibraryBooksAdapter(libraryUC),
		exportProgress,
		exportProgress,
		exportoutadapter.NewGoalsAdapter(goalsUC),
		exportoutadapter.NewFSNoteStore(),
		logger,
	))

	return &App{
		Config:      cfg,
		LibraryCLI:  libraryinadapter.NewCLIHandler(libraryUC),
		ProgressCLI: progressinadapter.NewCLIHandler(progressUC),
		GoalsCLI:    goalsinadapter.NewCLIHandler(goalsUC),
		ReaderCLI:   readerinadapter.NewCLIHandler(readerUC),
		ReaderTUI:   readerinadapter.NewTUIHandler(readerUC),
		ExportCLI:   exportinadapter.NewCLIHandler(exportUC),
		Watcher:     libraryinadapter.NewFolderWatcher(libraryUC, watchSettle, logger),
		db:          db,
		reader:      readerSvc,
		log:         logger,
	}, nil
}

// Close releases open documents and the database.
func (a *App) Close() error {
	if err := a.reader.CloseAll(); err != nil {
		a.log.Warn("close documents", "error", err)
	}
	return a.db.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.LibraryCLI, app.ProgressCLI, app.GoalsCLI, app.ReaderTUI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	app.ReaderTUI.OnCommit(func(c readerdto.CommitOutput) {
		program.Send(readerview.CommittedMsg{Commit: c})
	})
	_, err := program.Run()
	return err
}
