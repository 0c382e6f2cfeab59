package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"mosaicBackend/config"
	"mosaicBackend/display"
	"mosaicBackend/display/feed"
	displaystore "mosaicBackend/display/store"
	"mosaicBackend/domain/collage"
	"mosaicBackend/domain/photo"
	"mosaicBackend/domain/viewer"
	"mosaicBackend/realtime"
	"mosaicBackend/socket"
	"mosaicBackend/storage"
	"mosaicBackend/test"
	"mosaicBackend/utils"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	socketio "github.com/zishang520/socket.io/socket"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables from .env file if present
	_ = godotenv.Load()

	cmdArgs := utils.ParseArguments()
	isDevMode := *cmdArgs.DevelopmentMode

	log.SetTimeFormat("[2006-01-02 15:04:05]")

	if isDevMode {
		log.SetReportCaller(true)
	}

	mosaicConfig := config.Load(*cmdArgs.ConfigFile)
	storageManager := storage.CreateStorageManager(mosaicConfig)

	db := connectToDatabase(*cmdArgs.UseLocalDatabase, mosaicConfig)
	test.GenerateTestData(db)

	socketManager := socket.CreateSocketManager()
	photoFeed := realtime.CreateHub[displaystore.Photo]()
	settingsFeed := realtime.CreateHub[collage.SettingsIn]()
	socket.CreateFeedNamespace(socketManager, photoFeed, "feed", "photos")
	socket.CreateFeedNamespace(socketManager, settingsFeed, "feed", "settings")

	var (
		collageRepository = collage.CreateRepository(db)
		collageService    = collage.CreateService(collageRepository, storageManager, settingsFeed)
		collageHandler    = collage.CreateHandler(collageService)

		photoRepository = photo.CreateRepository(db)
		photoService    = photo.CreateService(photoRepository, collageRepository, storageManager, photoFeed, mosaicConfig.Uploads)
		photoHandler    = photo.CreateHandler(photoService)

		collageViewer = display.CreateViewer(photoFeed, photoService, feed.Options{
			PollInterval:       time.Duration(mosaicConfig.Realtime.PollIntervalSeconds) * time.Second,
			LivenessInterval:   time.Duration(mosaicConfig.Realtime.LivenessIntervalSeconds) * time.Second,
			DeleteRecheckDelay: time.Duration(mosaicConfig.Realtime.DeleteRecheckMillis) * time.Millisecond,
		})
		viewerService = viewer.CreateService(collageViewer, collageRepository)
		viewerHandler = viewer.CreateHandler(viewerService)
	)

	gin.SetMode(gin.ReleaseMode)
	webServer := gin.Default()

	collage.RegisterRoutes(webServer, collageHandler)
	photo.RegisterRoutes(webServer, photoHandler)
	viewer.RegisterRoutes(webServer, viewerHandler)

	// Stored photo objects are served directly under their public URL path.
	webServer.Static("/media", storageManager.MediaRoot())

	// Register Socket.IO endpoints
	c := socketio.DefaultServerOptions()
	webServer.GET("/socket.io/*any", gin.WrapH(socketManager.Server().ServeHandler(c)))
	webServer.POST("/socket.io/*any", gin.WrapH(socketManager.Server().ServeHandler(c)))

	var serverWaitGroup sync.WaitGroup
	connection := fmt.Sprintf("%s:%d", mosaicConfig.Server.Host, mosaicConfig.Server.Port)

	serverWaitGroup.Add(1)
	go startWebServer(webServer, connection, &serverWaitGroup)
	time.Sleep(100)

	log.Info("Mosaic API is ready to serve calls!", "conn", connection)
	serverWaitGroup.Wait()
}

func connectToDatabase(useLocalDatabase bool, config *config.MosaicConfig) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	if useLocalDatabase {
		log.Info("Connecting to local SQLite database", "path", config.Database.LocalFile)

		_ = os.Remove(config.Database.LocalFile)
		db, err = gorm.Open(sqlite.Open(config.Database.LocalFile), &gorm.Config{})
	} else {
		connection := fmt.Sprintf("%s@%s:%d/%s", config.Database.User, config.Database.Host, config.Database.Port, config.Database.Database)
		log.Info("Connecting to remote PostgreSQL database", "conn", connection)

		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d",
			config.Database.Host,
			config.Database.User,
			os.Getenv("MOSAIC_DATABASE_PASSWORD"),
			config.Database.Database,
			config.Database.Port,
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("Failed to connect to database: %s", err.Error())
		os.Exit(1)
	}

	return db
}

func startWebServer(server *gin.Engine, socket string, waitGroup *sync.WaitGroup) {
	defer waitGroup.Done()

	if err := server.Run(socket); err != nil {
		log.Fatalf("Failed to start web server on %s: %s", socket, err.Error())
	}
}
