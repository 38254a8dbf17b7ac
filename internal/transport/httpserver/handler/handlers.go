package handler

import (
	"checklist-app-go/internal/config"
	checklistdomain "checklist-app-go/internal/domain/checklist"
	summarydomain "checklist-app-go/internal/domain/summary"
	"checklist-app-go/pkg/logger"
)

type Handlers struct {
	Checklist *checklistdomain.Service
	Summary   *summarydomain.Service
	upload    config.UploadConfig
	log       logger.Logger
}

func New(upload config.UploadConfig, checklist *checklistdomain.Service, summary *summarydomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Checklist: checklist,
		Summary:   summary,
		upload:    upload,
		log:       log,
	}
}
