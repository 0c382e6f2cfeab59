package test

import (
	"testing"
	"time"

	"mosaicBackend/config"
	"mosaicBackend/display"
	"mosaicBackend/display/feed"
	displaystore "mosaicBackend/display/store"
	"mosaicBackend/domain/collage"
	"mosaicBackend/domain/photo"
	"mosaicBackend/domain/viewer"
	"mosaicBackend/realtime"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Seeded fixture values shared by the API tests.
const (
	SeedCollageUuid = "00000000-0000-0000-0000-00000000c011"
	SeedCollageCode = "AB12"

	SeedPhotoA = "00000000-0000-0000-0000-0000000000aa"
	SeedPhotoB = "00000000-0000-0000-0000-0000000000bb"
	SeedPhotoC = "00000000-0000-0000-0000-0000000000cc"
)

type TestEnv struct {
	Db             *gorm.DB
	PhotoFeed      realtime.Feed[displaystore.Photo]
	SettingsFeed   realtime.Feed[collage.SettingsIn]
	StorageManager *mockStorageManager
	CollageRepo    collage.Repository
	PhotoRepo      photo.Repository
	Viewer         display.Viewer
}

func GenerateTestData(db *gorm.DB) {
	db.Exec("DROP TABLE IF EXISTS collages,collage_settings,photos")

	if err := db.AutoMigrate(&collage.Collage{}); err != nil {
		panic("Failed to migrate collages")
	}

	if err := db.AutoMigrate(&collage.CollageSettings{}); err != nil {
		panic("Failed to migrate collage settings")
	}

	if err := db.AutoMigrate(&photo.Photo{}); err != nil {
		panic("Failed to migrate photos")
	}

	collage1 := collage.Collage{
		UUID: SeedCollageUuid,
		Name: "launch-party",
		Code: SeedCollageCode,
	}
	db.Create(&collage1)

	document := `{"pattern":"grid","photoCount":50,"capacity":4,` +
		`"photoSize":1.0,"photoRotation":false,` +
		`"animation":{"enabled":true,"speed":50},` +
		`"patterns":{"grid":{"spacing":0.1,"aspectRatio":1.78,"wallHeight":2.0},` +
		`"float":{"floorSize":12.0,"startHeight":-2.0,"maxHeight":8.0,"riseSpeed":0.5},` +
		`"wave":{"amplitude":1.5,"frequency":0.8,"baseHeight":2.5},` +
		`"spiral":{"radius":5.0,"heightStep":0.35,"angleStep":0.55,"baseHeight":0.5}}}`
	db.Create(&collage.CollageSettings{
		CollageID: collage1.ID,
		Document:  document,
	})

	baseTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, photoUuid := range []string{SeedPhotoA, SeedPhotoB, SeedPhotoC} {
		db.Create(&photo.Photo{
			Model:     gorm.Model{CreatedAt: baseTime.Add(time.Duration(i) * time.Minute)},
			UUID:      photoUuid,
			CollageID: collage1.ID,
			Url:       "/media/" + collage1.UUID + "/" + photoUuid + ".jpg",
			FileName:  photoUuid + ".jpg",
		})
	}
}

func SetupTestServer(t *testing.T) (*gin.Engine, *TestEnv) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %s", err.Error())
	}

	GenerateTestData(db)

	storageManager := CreateMockStorageManager()
	photoFeed := realtime.CreateHub[displaystore.Photo]()
	settingsFeed := realtime.CreateHub[collage.SettingsIn]()

	collageRepository := collage.CreateRepository(db)
	collageService := collage.CreateService(collageRepository, storageManager, settingsFeed)
	collageHandler := collage.CreateHandler(collageService)

	photoRepository := photo.CreateRepository(db)
	photoService := photo.CreateService(photoRepository, collageRepository, storageManager, photoFeed, config.UploadConfig{
		MaxFileSize:    10 << 20,
		ThumbnailWidth: 480,
	})
	photoHandler := photo.CreateHandler(photoService)

	collageViewer := display.CreateViewer(photoFeed, photoService, feed.Options{
		PollInterval:       50 * time.Millisecond,
		LivenessInterval:   time.Second,
		DeleteRecheckDelay: 20 * time.Millisecond,
	})
	viewerService := viewer.CreateService(collageViewer, collageRepository)
	viewerHandler := viewer.CreateHandler(viewerService)

	t.Cleanup(collageViewer.Close)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	collage.RegisterRoutes(router, collageHandler)
	photo.RegisterRoutes(router, photoHandler)
	viewer.RegisterRoutes(router, viewerHandler)

	return router, &TestEnv{
		Db:             db,
		PhotoFeed:      photoFeed,
		SettingsFeed:   settingsFeed,
		StorageManager: storageManager,
		CollageRepo:    collageRepository,
		PhotoRepo:      photoRepository,
		Viewer:         collageViewer,
	}
}
