package cli

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/food-punch-karachi/server/internal/agent/graph"
	"github.com/food-punch-karachi/server/internal/agent/graph/conversations"
	"github.com/food-punch-karachi/server/internal/agent/model"
	"github.com/food-punch-karachi/server/internal/agent/repo"
	"github.com/food-punch-karachi/server/internal/shop/cart"
	"github.com/food-punch-karachi/server/internal/shop/catalog"
	logx "github.com/food-punch-karachi/server/pkg/logger"
)

// app is the wired object graph shared by serve and chat.
type app struct {
	catalog *catalog.Catalog
	carts   cart.Store
	chat    *conversations.MessagesManager
	runner  graph.Runner

	rdb *goredis.Client
}

func (a *app) Close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			logx.Warn().Err(err).Msg("closing redis client")
		}
	}
}

// buildApp wires stores, the chat graph and the conversation manager.
func buildApp(ctx context.Context, cfg *AppConfig) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ttl, err := cfg.ConversationTTL()
	if err != nil {
		return nil, err
	}

	a := &app{catalog: catalog.Default()}

	var convRepo model.ConversationRepository
	switch cfg.StoreBackend {
	case StoreRedis:
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialise Redis client: %w", err)
		}
		a.rdb = rdb
		convRepo = repo.NewRedisConversationRepository(rdb, ttl)
		a.carts = cart.NewRedisStore(rdb, a.catalog, ttl)
		logx.Info().Msg("Connected to Redis successfully")
	default:
		convRepo = repo.NewMemoryConversationRepository()
		a.carts = cart.NewMemoryStore()
	}

	runner, err := graph.BuildRunner(ctx, graph.Config{
		APIKey:    cfg.ResolvedAPIKey(),
		BaseURL:   cfg.BaseURL,
		ChatModel: cfg.Chat,
		Prompt:    cfg.Prompt,
		Catalog:   a.catalog,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	a.runner = runner
	a.chat = conversations.NewMessagesManager(convRepo, runner)

	logx.Info().
		Str("store", cfg.StoreBackend).
		Str("model", cfg.Chat.Model).
		Msg("application wired")
	return a, nil
}
