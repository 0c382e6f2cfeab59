package config

import (
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

type (
	MosaicConfig struct {
		FileSystem FilesystemConfig `yaml:"fileSystem"`
		Server     ServerConfig     `yaml:"server"`
		Database   DatabaseConfig   `yaml:"database"`
		Uploads    UploadConfig     `yaml:"uploads"`
		Realtime   RealtimeConfig   `yaml:"realtime"`
	}

	FilesystemConfig struct {
		Media  string `yaml:"media"`
		Export string `yaml:"export"`
	}

	ServerConfig struct {
		Host string `yaml:"host"`
		Port uint   `yaml:"port"`
	}

	DatabaseConfig struct {
		Host      string `yaml:"host"`
		User      string `yaml:"user"`
		Database  string `yaml:"database"`
		Port      uint   `yaml:"port"`
		LocalFile string `yaml:"localFile"`
	}

	UploadConfig struct {
		// MaxFileSize The upload size limit in bytes.
		MaxFileSize int64 `yaml:"maxFileSize"`

		// ThumbnailWidth The pixel width thumbnails are resized to.
		ThumbnailWidth uint `yaml:"thumbnailWidth"`
	}

	RealtimeConfig struct {
		// PollIntervalSeconds How often the polling fallback re-fetches photos.
		PollIntervalSeconds uint `yaml:"pollIntervalSeconds"`

		// LivenessIntervalSeconds How often the feed engine cross-checks its
		// connected flag against the feed's last reported status.
		LivenessIntervalSeconds uint `yaml:"livenessIntervalSeconds"`

		// DeleteRecheckMillis How long after a DELETE event the engine re-issues
		// the removal, catching re-inserts from stale full-state responses.
		DeleteRecheckMillis uint `yaml:"deleteRecheckMillis"`
	}
)

func Load(fileName string) *MosaicConfig {
	config := defaultConfig()

	if configData, err := os.ReadFile(fileName); err != nil {
		log.Warn("Failed to load configuration file.", "path", fileName)
		data, err := yaml.Marshal(&config)
		err = os.WriteFile(fileName, data, 0755)
		if err != nil {
			log.Error("Failed to write default configuration file.", "path", fileName)
		}
	} else if err := yaml.Unmarshal(configData, &config); err != nil {
		log.Error("Failed to parse configuration file.", "error", err.Error())
	}

	return config
}

func defaultConfig() *MosaicConfig {
	return &MosaicConfig{
		FileSystem: FilesystemConfig{
			Media:  "./media/",
			Export: "./export/",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 3000,
		},
		Database: DatabaseConfig{
			Host:      "127.0.0.1",
			User:      "mosaic",
			Database:  "mosaic",
			Port:      5432,
			LocalFile: "./test.db",
		},
		Uploads: UploadConfig{
			MaxFileSize:    10 << 20,
			ThumbnailWidth: 480,
		},
		Realtime: RealtimeConfig{
			PollIntervalSeconds:     3,
			LivenessIntervalSeconds: 10,
			DeleteRecheckMillis:     500,
		},
	}
}
