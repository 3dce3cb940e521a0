package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	authDelivery "tarot-backend/internal/auth/delivery"
	authRepo "tarot-backend/internal/auth/repository"
	authUsecasePkg "tarot-backend/internal/auth/usecase"
	contentDelivery "tarot-backend/internal/content/delivery"
	contentRepo "tarot-backend/internal/content/repository"
	contentUsecasePkg "tarot-backend/internal/content/usecase"
	"tarot-backend/internal/daily"
	dailyDelivery "tarot-backend/internal/daily/delivery"
	notifDelivery "tarot-backend/internal/notification/delivery"
	notifRepo "tarot-backend/internal/notification/repository"
	notifUsecase "tarot-backend/internal/notification/usecase"
	"tarot-backend/internal/reading/cache"
	readingDelivery "tarot-backend/internal/reading/delivery"
	readingRepo "tarot-backend/internal/reading/repository"
	readingUsecasePkg "tarot-backend/internal/reading/usecase"
	tarotDelivery "tarot-backend/internal/tarot/delivery"
	tarotUsecasePkg "tarot-backend/internal/tarot/usecase"
	"tarot-backend/pkg/ai"
	"tarot-backend/pkg/chroma"
	"tarot-backend/pkg/config"
	"tarot-backend/pkg/fcm"
	"tarot-backend/pkg/supabase"
	"tarot-backend/pkg/whatsapp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	generationWorkers   = 3
	generationQueueSize = 200
)

type Handler struct {
	config *config.Config
	logger *zap.Logger

	authUsecase authUsecasePkg.AuthUsecase

	authHandler         *authDelivery.AuthHandler
	cardHandler         *tarotDelivery.CardHandler
	dailyHandler        *dailyDelivery.DailyHandler
	readingHandler      *readingDelivery.ReadingHandler
	contentHandler      *contentDelivery.ContentHandler
	subscriptionHandler *notifDelivery.SubscriptionHandler

	// persistence-backed features are off without a database
	historyEnabled bool
	worker         *contentUsecasePkg.GenerationWorker
	delivery       *notifUsecase.DeliveryService
	daily          *daily.Service
}

// NewHandler wires every feature from config. db may be nil, in which case
// history, subscriptions and admin content are not mounted.
func NewHandler(ctx context.Context, cfg *config.Config, db *gorm.DB, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Initialize runtime config for settings API
	InitRuntimeConfig(cfg.AIProvider, cfg.OllamaBaseURL, cfg.OllamaModel)

	generator := NewGenerator(ctx, cfg, logger)

	h := &Handler{
		config: cfg,
		logger: logger,
		daily:  daily.NewService(cfg.Location()),
	}

	interpretationCache := cache.New(cfg.ReadingCacheTTL, cache.WithMaxEntries(cfg.ReadingCacheMaxEntries))
	interpretUc := readingUsecasePkg.NewInterpretUsecase(generator, interpretationCache, logger)

	var fcmRepo authRepo.FCMTokenRepository
	if db != nil {
		fcmRepo = authRepo.NewFCMTokenRepository(db)
	}

	// Admin routes need the key check even in guest mode, so the usecase is
	// always built; only the Supabase client is optional
	var sb authUsecasePkg.SupabaseClient
	if cfg.AuthEnabled() {
		sb = supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		logger.Info("Supabase auth enabled")
	} else {
		logger.Warn("SUPABASE_URL not set, running in guest mode")
	}
	h.authUsecase = authUsecasePkg.NewAuthUsecase(sb, fcmRepo, authUsecasePkg.Options{
		JWTSecret:    cfg.SupabaseJWTSecret,
		AdminKeyHash: cfg.AdminAPIKeyHash,
	}, logger)
	h.authHandler = authDelivery.NewAuthHandler(h.authUsecase)

	catalogUc := tarotUsecasePkg.NewCatalogUsecase()
	h.dailyHandler = dailyDelivery.NewDailyHandler(h.daily)

	var historyUc readingUsecasePkg.HistoryUsecase
	var contentProvider tarotDelivery.ContentProvider
	if db != nil {
		historyUc = readingUsecasePkg.NewHistoryUsecase(readingRepo.NewGormReadingRepository(db), cfg.FreeHistoryLimit)
		h.historyEnabled = true

		h.worker = contentUsecasePkg.NewGenerationWorker(generationWorkers, generationQueueSize, logger)
		contentUc := contentUsecasePkg.NewContentUsecase(contentRepo.NewContentRepository(db), catalogUc, contentUsecasePkg.Options{
			Generator: generator,
			Index:     newVectorIndex(ctx, cfg, logger),
			Worker:    h.worker,
			Model:     modelName(cfg),
		}, logger)
		h.worker.Start()
		h.contentHandler = contentDelivery.NewContentHandler(contentUc)
		contentProvider = contentUc

		subscriberRepo := notifRepo.NewGormSubscriberRepository(db)
		h.subscriptionHandler = notifDelivery.NewSubscriptionHandler(
			notifUsecase.NewSubscriptionUsecase(subscriberRepo, cfg.DeliveryHour),
		)
		h.delivery = NewDeliveryService(ctx, cfg, db, h.daily, logger)
	} else {
		logger.Warn("DATABASE_URL not set, history, subscriptions and admin content are disabled")
	}

	h.cardHandler = tarotDelivery.NewCardHandler(catalogUc, contentProvider)
	h.readingHandler = readingDelivery.NewReadingHandler(interpretUc, historyUc, cfg.AuthEnabled())

	return h
}

// NewGenerator builds the AI provider chain, nil when none is configured
func NewGenerator(ctx context.Context, cfg *config.Config, logger *zap.Logger) ai.Generator {
	if !cfg.AIEnabled() {
		logger.Warn("no AI provider configured, interpretation and generation are disabled")
		return nil
	}

	// Ollama settings are read through getters so runtime updates take effect
	generator, err := ai.NewGenerator(ctx, ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiApiKey,
		GeminiModel:   cfg.GeminiModel,
		OllamaBaseURL: GetRuntimeOllamaBaseURL,
		OllamaModel:   GetRuntimeOllamaModel,
	}, logger)
	if err != nil {
		logger.Warn("failed to initialize AI service", zap.Error(err))
		return nil
	}
	logger.Info("AI service initialized", zap.String("provider", cfg.AIProvider))
	return generator
}

// NewDeliveryService builds the daily delivery fan-out with whichever
// channels are configured
func NewDeliveryService(ctx context.Context, cfg *config.Config, db *gorm.DB, dailySvc *daily.Service, logger *zap.Logger) *notifUsecase.DeliveryService {
	deliveryCfg := notifUsecase.DeliveryConfig{
		FCMRepo: authRepo.NewFCMTokenRepository(db),
		AppURL:  cfg.AppURL,
	}

	wa := whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppPhoneNumberID, cfg.WhatsAppToken)
	if wa.Configured() {
		deliveryCfg.Text = wa
	} else {
		logger.Warn("WhatsApp not configured, daily messages disabled")
	}

	if cfg.FirebaseCredentials != "" {
		fcmClient, err := fcm.NewClient(ctx, cfg.FirebaseCredentials, logger)
		if err != nil {
			logger.Warn("failed to initialize FCM client, push notifications disabled", zap.Error(err))
		} else {
			deliveryCfg.Push = fcmClient
		}
	}

	return notifUsecase.NewDeliveryService(notifRepo.NewGormSubscriberRepository(db), dailySvc, deliveryCfg, logger)
}

func newVectorIndex(ctx context.Context, cfg *config.Config, logger *zap.Logger) contentUsecasePkg.VectorIndex {
	if cfg.ChromaAPIKey == "" {
		logger.Warn("CHROMA_API_KEY not set, semantic search will not be available")
		return nil
	}
	chromaClient, err := chroma.NewChromaClient(ctx, cfg, logger)
	if err != nil {
		logger.Warn("failed to initialize Chroma client, semantic search will not be available", zap.Error(err))
		return nil
	}
	logger.Info("Chroma client initialized")
	return chromaClient
}

func modelName(cfg *config.Config) string {
	if ai.ProviderType(cfg.AIProvider) == ai.ProviderOllama {
		return cfg.OllamaModel
	}
	return cfg.GeminiModel
}

// Delivery returns the daily delivery service, nil without a database
func (h *Handler) Delivery() *notifUsecase.DeliveryService {
	return h.delivery
}

// Daily returns the daily card service
func (h *Handler) Daily() *daily.Service {
	return h.daily
}

// Close stops background workers
func (h *Handler) Close() {
	if h.worker != nil {
		h.worker.Stop()
	}
}

// Router builds the gin engine with CORS and every route mounted
func (h *Handler) Router() *gin.Engine {
	gin.SetMode(h.config.GinMode)
	r := gin.New()
	r.Use(requestLogger(h.logger), gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, "+authDelivery.AdminKeyHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)
	return r
}

// Start serves HTTP until ctx is cancelled, then drains in-flight requests
func (h *Handler) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	h.logger.Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
