package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-mate"

	defaultProfile = "master-profile.yaml"
)

type Config struct {
	Profile        string    `mapstructure:"profile"`
	Theme          string    `mapstructure:"theme"`
	ThemesDir      string    `mapstructure:"themes-dir"`
	ChromePath     string    `mapstructure:"chrome-path"`
	MatchThreshold float64   `mapstructure:"match-threshold"`
	AI             *AIConfig `mapstructure:"ai"`
	S3             *S3Config `mapstructure:"s3"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Vision   bool          `mapstructure:"vision"`
	Language string        `mapstructure:"language"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type S3Config struct {
	Region        string `mapstructure:"region"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access-key"`
	AccessKeyFile string `mapstructure:"access-key-file"`
	SecretKey     string `mapstructure:"secret-key"`
	SecretKeyFile string `mapstructure:"secret-key-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-mate keeps a master profile of your career and tailors resumes from it",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	setDefaults()

	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-mate.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "master profile location: a file path or s3://bucket/key (default is master-profile.yaml)")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "do not ask for confirmation")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	viper.BindPFlag("yes", rootCmd.PersistentFlags().Lookup("yes"))
}

func setDefaults() {
	viper.SetDefault("profile", defaultProfile)
	viper.SetDefault("theme", "standard")
	viper.SetDefault("themes-dir", "")
	viper.SetDefault("chrome-path", "")
	viper.SetDefault("match-threshold", 0.85)

	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.vision", true)
	viper.SetDefault("ai.language", "English")
	viper.SetDefault("ai.gemini.api-key", "")
	viper.SetDefault("ai.gemini.api-key-file", "")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-pro")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 200)

	viper.SetDefault("s3.region", "auto")
	viper.SetDefault("s3.endpoint", "")
	viper.SetDefault("s3.access-key", "")
	viper.SetDefault("s3.access-key-file", "")
	viper.SetDefault("s3.secret-key", "")
	viper.SetDefault("s3.secret-key-file", "")
}

func initConfig() {
	// A missing .env is fine, a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix("RESUME_MATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		// We can't proceed if the explicit config file is missing or broken.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.S3 == nil {
		config.S3 = &S3Config{}
	}
	if strings.TrimSpace(config.Profile) == "" {
		config.Profile = defaultProfile
	}

	return config, nil
}
