package bootstrap

import (
	"notevault-be/internal/config"
	"notevault-be/internal/controller"
	"notevault-be/internal/pkg/logger"
	"notevault-be/internal/repository/implementation"
	"notevault-be/internal/service"
	"notevault-be/pkg/attachment"

	"go.mongodb.org/mongo-driver/mongo"
)

type Container struct {
	// Controllers
	NoteController       controller.INoteController
	AttachmentController controller.IAttachmentController
	StatsController      controller.IStatsController

	Logger logger.ILogger
}

func NewContainer(db *mongo.Database, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Attachment pipeline
	codec := attachment.NewCodec(cfg.Attachment.MaxFileSize)
	builder := attachment.NewBuilder(codec)

	// 3. Repositories
	noteRepo := implementation.NewNoteRepository(db)

	// 4. Services
	noteService := service.NewNoteService(noteRepo, builder, sysLogger)
	statsService := service.NewStatsService(db)

	// 5. Controllers
	return &Container{
		NoteController:       controller.NewNoteController(noteService),
		AttachmentController: controller.NewAttachmentController(noteService, cfg.Attachment.ForwardMediaType),
		StatsController:      controller.NewStatsController(statsService),
		Logger:               sysLogger,
	}
}
