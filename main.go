package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"afyatoto/artifact"
	"afyatoto/db"
	qhttp "afyatoto/http"
	"afyatoto/logging"
	"afyatoto/ml"
	"afyatoto/monitoring"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Http struct {
		Port    int           `yaml:"port"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"http"`
	Log struct {
		Level string `yaml:"level"`
		Path  string `yaml:"path"`
	} `yaml:"log"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Artifacts struct {
		BaseURL      string        `yaml:"base_url"`
		ModelID      string        `yaml:"model_id"`
		FeaturesID   string        `yaml:"features_id"`
		ModelPath    string        `yaml:"model_path"`
		FeaturesPath string        `yaml:"features_path"`
		Timeout      time.Duration `yaml:"timeout"`
	} `yaml:"artifacts"`
	UI struct {
		Mode string `yaml:"mode"`
	} `yaml:"ui"`
}

func main() {
	// 1. Load config
	config, err := loadConfig("config.yaml")
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.Init(config.Log.Level, config.Log.Path)
	if err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()
	qhttp.SetLogger(logger)

	// 2. Initialize prediction history; the service stays up without it.
	if err := db.InitDB(config.Database.Path); err != nil {
		logger.Errorf("prediction history disabled: %v", err)
	} else {
		logger.Infof("database initialized at %s", config.Database.Path)
		defer db.Close()
	}

	// 3. Fetch and load artifacts before accepting traffic. They are
	// immutable afterwards, so handlers read them without locks.
	fetchArtifacts(config, logger)
	loadArtifacts(config, logger)

	qhttp.SetUIMode(config.UI.Mode)

	feed := monitoring.NewPredictionFeed(logger)
	go feed.Start()
	defer feed.Stop()
	qhttp.SetPredictionFeed(feed)

	// 4. Start HTTP server
	server := qhttp.NewServer(qhttp.ServerConfig{
		Port:    listenPort(config),
		Timeout: config.Http.Timeout,
	})
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// 5. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down...")

	if err := server.Stop(); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}

	logger.Info("exiting")
}

// fetchArtifacts downloads any missing artifact files. A failed download is
// logged and left to the loader's placeholder fallback.
func fetchArtifacts(config *Config, logger *zap.SugaredLogger) {
	timeout := config.Artifacts.Timeout
	if timeout == 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	files := []struct {
		id   string
		dest string
	}{
		{config.Artifacts.ModelID, config.Artifacts.ModelPath},
		{config.Artifacts.FeaturesID, config.Artifacts.FeaturesPath},
	}

	for _, f := range files {
		url := artifact.FileURL(config.Artifacts.BaseURL, f.id)
		downloaded, err := artifact.EnsureLocal(ctx, http.DefaultClient, url, f.dest)
		switch {
		case err != nil:
			logger.Errorf("failed to download %s: %v", f.dest, err)
		case downloaded:
			logger.Infof("downloaded %s", f.dest)
		default:
			logger.Infof("%s already exists", f.dest)
		}
	}
}

// loadArtifacts deserializes the artifacts, substituting empty placeholders
// on failure so the API keeps serving in a degraded state.
func loadArtifacts(config *Config, logger *zap.SugaredLogger) {
	models, err := ml.LoadModelSet(config.Artifacts.ModelPath)
	if err != nil {
		logger.Errorf("error loading model: %v", err)
	} else {
		logger.Infof("model loaded successfully, targets: %v", models.Targets())
	}
	qhttp.SetModelSet(models)

	table, err := ml.LoadFeatureTable(config.Artifacts.FeaturesPath)
	if err != nil {
		logger.Errorf("error loading features: %v", err)
	} else {
		logger.Infof("features loaded successfully, targets available: %v", table.Targets())
	}
	qhttp.SetFeatureTable(table)
}

// listenPort resolves the port, with the PORT env var taking precedence.
func listenPort(config *Config) int {
	if p := os.Getenv("PORT"); p != "" {
		if port, err := strconv.Atoi(p); err == nil && port > 0 {
			return port
		}
	}
	if config.Http.Port > 0 {
		return config.Http.Port
	}
	return 8050
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
