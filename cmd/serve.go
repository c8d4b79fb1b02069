package cmd

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentmatch/go-match-engine/api"
	"github.com/talentmatch/go-match-engine/config"
	"github.com/talentmatch/go-match-engine/internal/embedding"
	"github.com/talentmatch/go-match-engine/internal/engine"
	"github.com/talentmatch/go-match-engine/internal/logging"
	"github.com/talentmatch/go-match-engine/internal/nlp"
	"github.com/talentmatch/go-match-engine/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the match engine HTTP server",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "", "port to listen on")
	serveCmd.Flags().StringP("registry", "r", "", "path to the skill registry JSON file")
	serveCmd.Flags().String("data-dir", "", "snapshot directory for the memory storage driver")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("registry.path", serveCmd.Flags().Lookup("registry"))
	viper.BindPFlag("storage.data_dir", serveCmd.Flags().Lookup("data-dir"))
}

// serve wires the store, embedder, tagger, and engine, then runs the
// HTTP server until it exits.
func serve(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logging.New(viper.GetBool("json_logs"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync() //nolint:errcheck

	settings, err := config.Load(viper.GetViper())
	if err != nil {
		logger.Fatal("loading settings", zap.Error(err))
	}

	logger.Info("starting the match engine", zap.String("version", version))

	st, err := buildStore(ctx, settings, logger)
	if err != nil {
		logger.Fatal("creating the store", zap.Error(err))
	}
	defer st.Close()

	embedder, err := buildEmbedder(ctx, settings)
	if err != nil {
		logger.Fatal("creating the embedder", zap.Error(err))
	}

	var tagger nlp.Tagger
	if proseTagger, err := nlp.NewProseTagger(); err != nil {
		// Context-term extraction degrades to empty results; skill
		// matching keeps working.
		logger.Warn("tagger unavailable, context terms disabled", zap.Error(err))
	} else {
		tagger = proseTagger
	}

	matchEngine, err := engine.New(settings, st, embedder, tagger, logger)
	if err != nil {
		logger.Fatal("creating the engine", zap.Error(err))
	}

	if !settings.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(settings.Server.MaxRequestSize))
	router.Use(api.RequestLogMiddleware(logger))

	api.SetupRoutes(router, matchEngine, logger)

	addr := ":" + settings.Server.Port
	logger.Info("listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func buildStore(ctx context.Context, settings *config.Settings, logger *zap.Logger) (store.Store, error) {
	switch settings.Storage.Driver {
	case config.StoragePostgres:
		logger.Info("using postgres storage")
		return store.NewPostgresStore(ctx, settings.Storage.DSN, settings.Embedding.Dim)
	default:
		logger.Info("using memory storage", zap.String("data_dir", settings.Storage.DataDir))
		return store.NewMemoryStore(settings.Storage.DataDir), nil
	}
}

func buildEmbedder(ctx context.Context, settings *config.Settings) (embedding.Embedder, error) {
	switch settings.Embedding.Provider {
	case config.EmbedderGemini:
		return embedding.NewGemini(ctx, settings.Embedding.APIKey, settings.Embedding.Model, settings.Embedding.Dim)
	default:
		return embedding.NewStatic(settings.Embedding.Dim), nil
	}
}
