package bot

import "os"

// Config represents the configuration for the bot
type Config struct {
	// Bot username, used to build referral links
	Username string
	// Directory with the gallows stage images
	ImageDir string
	// Number of rows shown on the leaderboard
	TopScoresLimit int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *Config {
	return &Config{
		Username:       os.Getenv("BOT_USERNAME"),
		ImageDir:       "image",
		TopScoresLimit: 50,
	}
}
