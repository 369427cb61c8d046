package di

import (
	"context"
	"fmt"
	"time"

	"kennedy-digital-arts/backend/ai"
	"kennedy-digital-arts/backend/internal/registry"
	"kennedy-digital-arts/backend/internal/service"
	"kennedy-digital-arts/backend/pkg/cache"
	"kennedy-digital-arts/backend/pkg/config"
	"kennedy-digital-arts/backend/pkg/health"
	"kennedy-digital-arts/backend/pkg/jwt"
	"kennedy-digital-arts/backend/pkg/logger"
	"kennedy-digital-arts/backend/pkg/secrets"
	"kennedy-digital-arts/backend/shared/redis"
	"kennedy-digital-arts/backend/speech"

	"gorm.io/gorm"
)

// Container holds all the dependencies for the application
type Container struct {
	DB             *gorm.DB
	Logger         *logger.Logger
	Config         *config.Config
	JWTService     *jwt.Service
	Redis          *redis.RedisClient
	Secrets        secrets.Manager
	Registry       *registry.Registry
	Chain          *ai.Chain
	UserService    *service.UserService
	MessageService *service.MessageService
	ChatService    *service.ChatService
	ArtworkService *service.ArtworkService
	TokenService   *service.TokenService
	SpeechService  *service.SpeechService
	Health         *health.Checker
}

// Options tunes container assembly. Zero value uses application config.
type Options struct {
	LoggerConfig *logger.Config
	DisableRedis bool
}

// New creates a new dependency injection container
func New(db *gorm.DB, opts *Options) (*Container, error) {
	if opts == nil {
		opts = &Options{}
	}

	cfg := config.Get()

	loggerConfig := logger.DefaultConfig()
	if opts.LoggerConfig != nil {
		loggerConfig = *opts.LoggerConfig
	}
	log := logger.New(loggerConfig)

	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	var redisClient *redis.RedisClient
	if !opts.DisableRedis {
		redisClient = redis.NewRedisClient()
	}

	characterRegistry, err := registry.Load(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load character registry: %w", err)
	}

	secretsManager, err := buildSecretsManager(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets: %w", err)
	}

	chain := buildChain(cfg, secretsManager, log)
	speechService := buildSpeechService(cfg, secretsManager, log)

	userService := service.NewUserService(db)
	messageService := service.NewMessageService(db, redisClient, log)
	chatService := service.NewChatService(characterRegistry, messageService, chain, log)
	artworkService := service.NewArtworkService(db)
	tokenService := service.NewTokenService(db, artworkService)

	checker := health.NewChecker(log, 30*time.Second)
	checker.RegisterDatabaseCheck(func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	})
	if redisClient != nil {
		checker.RegisterCheck("redis", func() (health.Status, string, error) {
			if err := redisClient.Ping(); err != nil {
				return health.StatusDown, "redis unreachable", err
			}
			return health.StatusUp, "connected", nil
		})
	}

	return &Container{
		DB:             db,
		Logger:         log,
		Config:         cfg,
		JWTService:     jwtService,
		Redis:          redisClient,
		Secrets:        secretsManager,
		Registry:       characterRegistry,
		Chain:          chain,
		UserService:    userService,
		MessageService: messageService,
		ChatService:    chatService,
		ArtworkService: artworkService,
		TokenService:   tokenService,
		SpeechService:  speechService,
		Health:         checker,
	}, nil
}

// buildSecretsManager chains the available secret sources: Vault when
// configured, then the database secrets table.
func buildSecretsManager(db *gorm.DB, log *logger.Logger) (secrets.Manager, error) {
	vaultManager, err := secrets.NewVaultManager(log)
	if err != nil {
		// Vault misconfiguration should not block startup; the DB source
		// and plain env vars still work.
		log.Warn("vault unavailable, continuing without it", "error", err.Error())
		vaultManager = nil
	}

	dbManager, err := secrets.NewDBManager(db, log)
	if err != nil {
		return nil, err
	}

	if vaultManager == nil {
		return secrets.NewChainManager(dbManager), nil
	}
	return secrets.NewChainManager(vaultManager, dbManager), nil
}

// buildChain resolves provider credentials once at startup and assembles
// the fallback chain in the configured order. Providers without credentials
// are skipped; exhaustion still yields the apology text.
func buildChain(cfg *config.Config, mgr secrets.Manager, log *logger.Logger) *ai.Chain {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	geminiKey := resolveCredential(ctx, mgr, cfg.Providers.GeminiAPIKey, "GEMINI_API_KEY")
	openaiKey := resolveCredential(ctx, mgr, cfg.Providers.OpenAIAPIKey, "OPENAI_API_KEY")
	localURL := cfg.Providers.LocalModelURL

	var providers []ai.TextProvider
	for _, name := range cfg.Providers.Order {
		switch name {
		case "gemini":
			providers = append(providers, ai.NewGeminiProvider(geminiKey))
		case "openai":
			providers = append(providers, ai.NewOpenAIProvider(openaiKey))
		case "local":
			if localURL != "" {
				providers = append(providers, ai.NewLocalModelProvider(localURL))
			}
		default:
			log.Warn("unknown text provider in order, skipping", "provider", name)
		}
	}

	return ai.NewChain(log, providers...)
}

func buildSpeechService(cfg *config.Config, mgr secrets.Manager, log *logger.Logger) *service.SpeechService {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var remote speech.Synthesizer
	if key := resolveCredential(ctx, mgr, cfg.Providers.ElevenLabsAPIKey, "ELEVENLABS_API_KEY"); key != "" {
		remote = speech.NewElevenLabsSynthesizer(key)
	} else if key := resolveCredential(ctx, mgr, cfg.Providers.GoogleTTSAPIKey, "GOOGLE_TTS_API_KEY"); key != "" {
		remote = speech.NewGoogleTTSSynthesizer(key)
	}

	var audioCache *cache.Cache
	if cfg.Cache.Enabled {
		audioCache = cache.NewCache()
	}

	return service.NewSpeechService(remote, speech.NewLocalSynthesizer(), audioCache, log, cfg.Playback.WordsPerMinute)
}

func resolveCredential(ctx context.Context, mgr secrets.Manager, envValue, key string) string {
	if envValue != "" {
		return envValue
	}
	if mgr == nil {
		return ""
	}
	return mgr.GetSecretWithDefault(ctx, key, "")
}
