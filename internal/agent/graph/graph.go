package graph

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"

	"github.com/food-punch-karachi/server/internal/agent/graph/nodes"
	"github.com/food-punch-karachi/server/internal/agent/graph/observers"
	"github.com/food-punch-karachi/server/internal/agent/graph/prompts"
	"github.com/food-punch-karachi/server/internal/agent/graph/tools"
	"github.com/food-punch-karachi/server/internal/agent/model"
	errx "github.com/food-punch-karachi/server/internal/core/error"
	"github.com/food-punch-karachi/server/internal/shop/catalog"
	logx "github.com/food-punch-karachi/server/pkg/logger"
)

// Runner executes the tool-call orchestration over a history.
type Runner interface {
	// Resolve runs one exchange: a completion, at most one tool round, and a
	// confirmation completion when tools ran. history must end with the new
	// user turn. cart may be nil, in which case tool calls add nothing.
	Resolve(ctx context.Context, sessionID string, history []model.Turn, cart model.CartMutator) (*model.Resolution, error)

	// CompleteOnce performs one stateless round-trip and returns the raw
	// completion without executing any tool.
	CompleteOnce(ctx context.Context, history []model.Turn) (*model.Completion, error)
}

// Config holds everything needed to compose the graph end-to-end against Gemini.
type Config struct {
	APIKey    string
	BaseURL   string
	ChatModel model.ChatModelConfig
	Prompt    model.PromptConfig
	Catalog   *catalog.Catalog
}

// GraphConfig holds all configuration needed to build the graph
type GraphConfig struct {
	ChatModel einomodel.BaseChatModel
	ModelName string
	Prompt    *model.PromptConfig
	Catalog   *catalog.Catalog
}

// GraphBuilder handles the construction of the chat graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.ResolveInput, *model.Resolution]
}

type graphRunner struct {
	runnable compose.Runnable[model.ResolveInput, *model.Resolution]
	config   *GraphConfig
}

func (r *graphRunner) Resolve(ctx context.Context, sessionID string, history []model.Turn, cart model.CartMutator) (*model.Resolution, error) {
	ctx = tools.WithCart(ctx, cart)

	out, err := r.runnable.Invoke(ctx, model.ResolveInput{
		SessionID: sessionID,
		History:   history,
	}, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		logx.Warn().Err(err).Str("session_id", sessionID).Msg("exchange failed")
		return nil, errx.WrapService(err)
	}
	if out == nil {
		return nil, errx.WrapService(nodes.ErrEmptyCompletion)
	}

	logx.Debug().
		Str("session_id", sessionID).
		Bool("tool_round", out.ToolRound).
		Int("turns", len(out.History)).
		Float64("total_cost_usd", out.CostUSD).
		Msg("exchange resolved")
	return out, nil
}

func (r *graphRunner) CompleteOnce(ctx context.Context, history []model.Turn) (*model.Completion, error) {
	systemPrompt, err := prompts.RenderSystemInstruction(ctx, *r.config.Prompt, r.config.Catalog)
	if err != nil {
		return nil, errx.WrapService(err)
	}

	out, err := r.config.ChatModel.Generate(ctx, nodes.TurnsToMessages(systemPrompt, history))
	if err != nil {
		logx.Warn().Err(err).Msg("completion relay failed")
		return nil, errx.WrapService(err)
	}
	if out == nil {
		return nil, errx.WrapService(nodes.ErrEmptyCompletion)
	}

	seq := 0
	nodes.EnsureToolCallIDs(out, &seq)

	c := &model.Completion{Text: nodes.CleanReplyText(out.Content)}
	if turn, ok := nodes.MessageToModelTurn(out); ok {
		c.ModelTurn = &turn
		c.FunctionCalls = turn.FunctionCalls()
	}
	return c, nil
}

// BuildRunner creates the Gemini chat model, binds the cart tool and builds the graph.
func BuildRunner(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}

	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Chat:    &cfg.ChatModel,
	})
	if err != nil {
		return nil, err
	}

	toolInfos, err := tools.GetToolInfos(ctx, tools.GetOrderTools(cfg.Catalog))
	if err != nil {
		logx.Error().Err(err).Msg("Failed to get tool infos")
		return nil, fmt.Errorf("failed to get tool infos: %w", err)
	}
	if err := cms.BindTools(ctx, toolInfos); err != nil {
		return nil, err
	}

	runner, err := NewRunner(ctx, &GraphConfig{
		ChatModel: cms.Chat,
		ModelName: cms.ModelName,
		Prompt:    &cfg.Prompt,
		Catalog:   cfg.Catalog,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Str("model", cms.ModelName).Msg("Chat graph built successfully")
	return runner, nil
}

// NewRunner compiles the graph over an already configured chat model.
func NewRunner(ctx context.Context, config *GraphConfig) (Runner, error) {
	runnable, err := BuildGraph(ctx, config)
	if err != nil {
		return nil, err
	}
	return &graphRunner{runnable: runnable, config: config}, nil
}

// BuildGraph constructs and returns the compiled chat graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.ResolveInput, *model.Resolution], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModel == nil {
		return nil, fmt.Errorf("chat model is not initialized")
	}
	if config.Prompt == nil || config.Catalog == nil {
		return nil, fmt.Errorf("prompt config or catalog is nil")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.ResolveInput, *model.Resolution](
			compose.WithGenLocalState(func(ctx context.Context) *model.ChatState {
				return &model.ChatState{}
			}),
		),
	}

	if err := builder.setupTools(ctx); err != nil {
		return nil, err
	}
	if err := builder.addNodes(); err != nil {
		return nil, err
	}
	if err := builder.addEdges(); err != nil {
		return nil, err
	}
	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// setupTools adds the tool executor node
func (b *GraphBuilder) setupTools(ctx context.Context) error {
	toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
		Tools:               tools.GetOrderTools(b.config.Catalog),
		ExecuteSequentially: true,
		UnknownToolsHandler: func(ctx context.Context, name, input string) (string, error) {
			logx.Warn().
				Str("tool_name", name).
				Str("arguments", input).
				Msg("Unknown tool call; ignoring")
			return fmt.Sprintf("{\"error\":\"unknown_tool\",\"name\":%q,\"note\":\"ignored\"}", name), nil
		},
		ToolArgumentsHandler: func(ctx context.Context, name, arguments string) (string, error) {
			if name == tools.ToolAddToCart {
				return tools.NormalizeAddToCartArguments(arguments), nil
			}
			return arguments, nil
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Failed to create tools node")
		return fmt.Errorf("failed to create tools node: %w", err)
	}

	if err := b.graph.AddToolsNode(nodes.NodeToolExecutor, toolsNode,
		compose.WithStatePostHandler(nodes.NewToolExecutorPostHandler()),
	); err != nil {
		return fmt.Errorf("add tools node: %w", err)
	}
	return nil
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() error {
	if err := b.graph.AddLambdaNode(nodes.NodeAssembler,
		nodes.NewAssemblerNode(b.config.Prompt, b.config.Catalog),
		compose.WithStatePreHandler(nodes.NewAssemblerPreHandler()),
	); err != nil {
		return fmt.Errorf("add %s node: %w", nodes.NodeAssembler, err)
	}

	if err := b.graph.AddChatModelNode(nodes.NodeCompletion,
		b.config.ChatModel,
		compose.WithStatePostHandler(nodes.NewCompletionPostHandler(b.config.ModelName)),
	); err != nil {
		return fmt.Errorf("add %s node: %w", nodes.NodeCompletion, err)
	}

	if err := b.graph.AddChatModelNode(nodes.NodeConfirmation,
		b.config.ChatModel,
		compose.WithStatePreHandler(nodes.NewConfirmationPreHandler()),
		compose.WithStatePostHandler(nodes.NewConfirmationPostHandler(b.config.ModelName)),
	); err != nil {
		return fmt.Errorf("add %s node: %w", nodes.NodeConfirmation, err)
	}

	if err := b.graph.AddLambdaNode(nodes.NodeFinalizer, nodes.NewFinalizerNode()); err != nil {
		return fmt.Errorf("add %s node: %w", nodes.NodeFinalizer, err)
	}
	return nil
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() error {
	edges := [][2]string{
		{compose.START, nodes.NodeAssembler},
		{nodes.NodeAssembler, nodes.NodeCompletion},
		{nodes.NodeToolExecutor, nodes.NodeConfirmation},
		{nodes.NodeConfirmation, nodes.NodeFinalizer},
		{nodes.NodeFinalizer, compose.END},
	}

	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			return fmt.Errorf("add edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

// addBranches routes the first completion to the tool executor or straight to the finalizer.
func (b *GraphBuilder) addBranches() error {
	toolBranch := compose.NewGraphBranch(
		nodes.NewToolCallCondition(),
		map[string]bool{
			nodes.NodeToolExecutor: true,
			nodes.NodeFinalizer:    true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeCompletion, toolBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding tool branch")
		return fmt.Errorf("error adding tool branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.ResolveInput, *model.Resolution], error) {
	// The graph is acyclic: at most five node executions per run.
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(10))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
