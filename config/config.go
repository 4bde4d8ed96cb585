package config

import "github.com/caarlos0/env/v11"

// Config holds all process-wide settings, read once at startup and passed
// explicitly to each collaborator. Credentials are intentionally not marked
// required: a missing value only matters when the step that needs it runs.
type Config struct {
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	ChatModel     string `env:"CHAT_MODEL"    envDefault:"gpt-4o"`
	ImageModel    string `env:"IMAGE_MODEL"   envDefault:"dall-e-3"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRefreshToken string `env:"GOOGLE_REFRESH_TOKEN"`
	BloggerBlogID      string `env:"BLOGGER_BLOG_ID"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
