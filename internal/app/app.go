package app

import (
	"context"
	"net/http"

	"checklist-app-go/internal/blob"
	"checklist-app-go/internal/config"
	"checklist-app-go/internal/db"
	checklistdomain "checklist-app-go/internal/domain/checklist"
	summarydomain "checklist-app-go/internal/domain/summary"
	checklistrepo "checklist-app-go/internal/repository/firestore/checklist"
	summaryrepo "checklist-app-go/internal/repository/firestore/summary"
	"checklist-app-go/internal/repository/inmemory"
	"checklist-app-go/internal/transport/httpserver"
	"checklist-app-go/internal/transport/httpserver/handler"
	"checklist-app-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	firebase   *db.Firebase
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg := config.Load(log)

	var (
		fb            *db.Firebase
		checklistRepo checklistdomain.Repository
		summaryRepo   summarydomain.Repository
		blobs         checklistdomain.BlobStore
	)

	switch cfg.Store.Driver {
	case "memory":
		log.Warn("store: using in-memory driver, data is not persisted")
		mem := inmemory.NewChecklist()
		checklistRepo = mem
		summaryRepo = mem
		blobs = blob.NewMemory("memory://photos")
	default:
		fb = db.NewFirebase(cfg.Firebase, cfg.Store.OpTimeout)
		// Missing credentials are a warning, not a crash: the process
		// serves explanatory 500s until the store is configured.
		if err := fb.Connect(ctx); err != nil {
			log.Warn("store: firebase connect failed, store-backed requests will error", "err", err)
		}
		checklistRepo = checklistrepo.NewFirestore(fb, log)
		summaryRepo = summaryrepo.NewFirestore(fb, log)
		blobs = blob.NewFirebaseStorage(fb, cfg.Firebase.StorageBucket)
	}

	checklistSvc := checklistdomain.NewServiceWithPhotoConfig(checklistRepo, blobs, checklistdomain.PhotoConfig{
		MaxImageEdge: cfg.Upload.MaxImageEdge,
	})
	summarySvc := summarydomain.NewService(summaryRepo)

	handlers := handler.New(cfg.Upload, checklistSvc, summarySvc, log)
	router := httpserver.NewRouter(cfg, handlers)
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		firebase:   fb,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.firebase == nil {
		return nil
	}
	return a.firebase.Close()
}
