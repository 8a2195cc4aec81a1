package datanikah

import (
	"context"
	"fmt"
	"time"

	"github.com/kart-io/logger"

	"github.com/kart-io/datanikah/internal/datanikah/biz"
	"github.com/kart-io/datanikah/internal/datanikah/handler"
	"github.com/kart-io/datanikah/internal/datanikah/router"
	"github.com/kart-io/datanikah/internal/datanikah/store"
	"github.com/kart-io/datanikah/pkg/component"
	"github.com/kart-io/datanikah/pkg/component/mongodb"
	"github.com/kart-io/datanikah/pkg/component/redis"
	"github.com/kart-io/datanikah/pkg/infra/app"
	"github.com/kart-io/datanikah/pkg/infra/server"
	httpserver "github.com/kart-io/datanikah/pkg/infra/server/http"
	"github.com/kart-io/datanikah/pkg/security/auth/jwt"
)

const connectTimeout = 10 * time.Second

// Server represents the datanikah server.
type Server struct {
	mgr     *server.Manager
	http    *httpserver.Server
	closers []func() error
}

// NewServer initializes every dependency and registers routes.
// Nothing listens until Run is called.
func NewServer(ctx context.Context, opts *Options) (*Server, error) {
	// 1. 初始化日志
	if err := opts.Log.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Infow("Starting datanikah...", "version", app.GetVersion(), "store", opts.Store.Driver)

	s := &Server{}
	var clients []component.Client
	ok := false
	defer func() {
		if !ok {
			s.close()
		}
	}()

	// 2. 初始化存储
	var factory store.Factory
	switch opts.Store.Driver {
	case DriverMongoDB:
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		mongoClient, err := mongodb.NewWithContext(connectCtx, opts.MongoDB)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mongodb: %w", err)
		}
		factory = store.NewMongoFactory(mongoClient)
		s.closers = append(s.closers, factory.Close)
		clients = append(clients, mongoClient)

		indexCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		err = store.EnsureIndexes(indexCtx, mongoClient)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to ensure indexes: %w", err)
		}
		logger.Infow("MongoDB store initialized", "database", opts.MongoDB.Database)
	default:
		factory = store.NewMemoryFactory()
		logger.Warn("Using in-memory store, data is lost on restart")
	}

	// 3. 初始化 Redis（可选）
	var tokenStore jwt.Store
	var statsCache store.StatsCache
	if opts.Redis.Enabled {
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		redisClient, err := redis.NewWithContext(connectCtx, opts.Redis)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		s.closers = append(s.closers, redisClient.Close)
		clients = append(clients, redisClient)
		tokenStore = jwt.NewRedisStore(redisClient)
		statsCache = store.NewRedisStatsCache(redisClient)
		logger.Infow("Redis initialized", "addr", opts.Redis.Addr())
	} else {
		memStore := jwt.NewMemoryStore(time.Minute)
		s.closers = append(s.closers, memStore.Close)
		tokenStore = memStore
		statsCache = store.NewLocalStatsCache()
		logger.Info("Redis disabled, using local token store and stats cache")
	}

	// 4. 初始化 JWT
	jwtAuth, err := jwt.New(jwt.WithOptions(opts.JWT), jwt.WithStore(tokenStore))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize jwt: %w", err)
	}

	// 5. 初始化 Biz 层
	authService := biz.NewAuthService(jwtAuth, factory.Users())
	dispatcher := biz.NewDispatcher(factory.Records(), opts.Chat.Region)
	chatService := biz.NewChatService(dispatcher, opts.Chat.Region, opts.Chat.SessionTTL)
	dashboardService := biz.NewDashboardService(factory.Records(), statsCache, opts.Dashboard.CacheTTL)
	recordService := biz.NewRecordService(factory.Records())
	importService := biz.NewImportService(factory, statsCache)
	recentFeed := biz.NewRecentFeed(factory.Records(), opts.Recent.Limit, opts.Recent.PollInterval)
	logger.Info("Biz layer initialized")

	// 6. 创建初始管理员
	if err := authService.SeedAdmin(ctx, opts.Admin.Email, opts.Admin.Password, opts.Admin.Name); err != nil {
		return nil, fmt.Errorf("failed to seed admin: %w", err)
	}

	// 7. 初始化 Handler 层
	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Chat:      handler.NewChatHandler(chatService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Record:    handler.NewRecordHandler(recordService, importService, recentFeed),
		Health:    handler.NewHealthHandler(clients...),
	}

	// 8. 初始化服务器并注册路由
	routeCfg := router.Config{
		Verifier:       jwtAuth,
		MaxUploadBytes: opts.HTTP.MaxBodyBytes,
		AllowOrigins:   opts.HTTP.AllowOrigins,
	}
	s.http = httpserver.NewServer(opts.HTTP, router.Middlewares(routeCfg)...)
	router.Register(s.http.Engine(), handlers, routeCfg)

	s.mgr = server.NewManager(
		server.WithServer(s.http),
		server.WithShutdownTimeout(opts.HTTP.ShutdownTimeout),
	)

	ok = true
	logger.Info("datanikah is ready")
	return s, nil
}

// Run starts the server and listens for termination signals.
func (s *Server) Run(ctx context.Context) error {
	defer s.close()
	return s.mgr.Run(ctx)
}

// close releases clients in reverse order of creation.
func (s *Server) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			logger.Warnw("failed to close resource", "error", err.Error())
		}
	}
	s.closers = nil
}
