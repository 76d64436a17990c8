package core

const (
	BotName          = "WearBot"
	BotUserAgent     = "WearBot-Agent/0.1"
	BotRepositoryURL = "https://github.com/sandevgo/wearbot"
	BotVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Reasoning string `json:"reasoning,omitempty"`
}
