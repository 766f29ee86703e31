package model

// ================ Config ================
type ConversationConfig struct {
	TTL string `envconfig:"CONVERSATION_TTL" default:"24h"`
}

type ChatModelConfig struct {
	Model          string  `envconfig:"CHAT_MODEL" default:"gemini-3-flash-preview"`
	MaxTokens      int     `envconfig:"CHAT_MAX_TOKENS" default:"1024"`
	Temperature    float32 `envconfig:"CHAT_TEMPERATURE" default:"0.7"`
	ThinkingBudget int32   `envconfig:"CHAT_THINKING_BUDGET" default:"0"`
}

type PromptConfig struct {
	BusinessName string `envconfig:"PROMPT_BUSINESS_NAME" default:"Food Punch Karachi"`
}
