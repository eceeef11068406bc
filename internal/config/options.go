package config

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for default values.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "http_addr", Default: ":5000", Comment: "HTTP listen address"},
		{Key: "http.mode", Default: "release", Comment: "gin mode: debug, release or test"},
		{Key: "shutdown_timeout", Default: "5s", Comment: "Grace period for in-flight requests on shutdown"},

		{Key: "log.level", Default: "info", Comment: "zerolog level: trace, debug, info, warn, error"},
		{Key: "log.format", Default: "console", Comment: "Log output: console or json"},

		{Key: "store.driver", Default: "sqlite", Comment: "Post store: sqlite, postgres or mongo"},
		{Key: "store.sqlite.path", Default: "./blogify.db", Comment: "SQLite database file"},
		{Key: "store.postgres.dsn", Default: "", Comment: "Postgres connection string"},
		{Key: "store.mongo.uri", Default: "", Comment: "MongoDB connection URI"},
		{Key: "store.mongo.database", Default: "blogify", Comment: "MongoDB database name"},

		{Key: "render.highlight", Default: true, Comment: "Highlight fenced code with CSS classes"},
		{Key: "render.trust_html", Default: false, Comment: "Sanitize html posts instead of escaping them"},
		{Key: "render.link_base", Default: "", Comment: "Base URL for relative links and images in Markdown"},

		{Key: "ai.provider", Default: "openrouter", Comment: "openrouter, openai, gemini, anthropic or none"},
		{Key: "ai.api_key", Default: "", Comment: "Provider API key; empty disables generation"},
		{Key: "ai.base_url", Default: "", Comment: "Override the provider endpoint"},
		{Key: "ai.model", Default: "gpt-3.5-turbo", Comment: "Model name passed to the provider"},
		{Key: "ai.timeout", Default: "30s", Comment: "Upper bound for one generation call"},

		{Key: "import.glob", Default: "**/*.md", Comment: "Files considered by imports"},
		{Key: "import.github.owner", Default: "", Comment: "GitHub owner synced by the webhook"},
		{Key: "import.github.repo", Default: "", Comment: "GitHub repository synced by the webhook"},
		{Key: "import.github.token", Default: "", Comment: "GitHub token for private repositories"},

		{Key: "webhook.secret", Default: "", Comment: "GitHub webhook secret; empty disables /webhook/git"},
	}
}
