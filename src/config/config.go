package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultLocations is the yard location list served when the locations collection is empty.
var DefaultLocations = []string{
	"FRZ",
	"CLR",
	"SEAS",
	"DRY FRONT",
	"DRY BACK",
	"WAWA",
	"YARD",
	"HRTHSDE",
}

type Config struct {
	App struct {
		CompanyName        string
		TimeZone           *time.Location
		Locations          []string
		TrailerIDMinLength int
	}

	HTTP struct {
		Host        string
		CORSOrigins []string
	}

	DB struct {
		DSN string
	}

	Auth struct {
		JWTSecret string
		TokenTTL  time.Duration
	}

	MoveFeed struct {
		Listen       bool
		PollInterval time.Duration
	}

	Metrics struct {
		Enabled bool
	}

	Export struct {
		S3Bucket   string
		S3Region   string
		S3Endpoint string
	}

	Drive struct {
		CredentialsPath string
		CredentialsJSON string
	}

	Seed struct {
		AdminEmail    string
		AdminPassword string
		AdminName     string
	}
}

// Load reads the optional .env file and resolves every setting from the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", ":8080")
	v.SetDefault("COMPANY_NAME", "SimpleYM")
	v.SetDefault("TIME_ZONE", "America/New_York")
	v.SetDefault("LOCATIONS", strings.Join(DefaultLocations, ","))
	v.SetDefault("TRAILER_ID_MIN_LENGTH", 6)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("TOKEN_TTL", "1h")
	v.SetDefault("MOVE_FEED_LISTEN", true)
	v.SetDefault("MOVE_FEED_POLL_INTERVAL", "0s")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("EXPORT_S3_REGION", "us-east-1")
	v.SetDefault("SEED_ADMIN_NAME", "Administrator")

	var c Config
	loc, err := time.LoadLocation(v.GetString("TIME_ZONE"))
	if err != nil {
		return c, err
	}

	c.App.CompanyName = v.GetString("COMPANY_NAME")
	c.App.TimeZone = loc
	c.App.Locations = splitList(v.GetString("LOCATIONS"))
	c.App.TrailerIDMinLength = v.GetInt("TRAILER_ID_MIN_LENGTH")

	c.HTTP.Host = v.GetString("SERVER_HOST")
	c.HTTP.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))

	c.DB.DSN = v.GetString("DB_DSN")

	c.Auth.JWTSecret = v.GetString("JWT_SECRET")
	c.Auth.TokenTTL = v.GetDuration("TOKEN_TTL")

	c.MoveFeed.Listen = v.GetBool("MOVE_FEED_LISTEN")
	c.MoveFeed.PollInterval = v.GetDuration("MOVE_FEED_POLL_INTERVAL")

	c.Metrics.Enabled = v.GetBool("METRICS_ENABLED")

	c.Export.S3Bucket = v.GetString("EXPORT_S3_BUCKET")
	c.Export.S3Region = v.GetString("EXPORT_S3_REGION")
	c.Export.S3Endpoint = v.GetString("EXPORT_S3_ENDPOINT")

	c.Drive.CredentialsPath = v.GetString("GOOGLE_DRIVE_CREDENTIALS_PATH")
	c.Drive.CredentialsJSON = v.GetString("GOOGLE_DRIVE_CREDENTIALS_JSON")

	c.Seed.AdminEmail = v.GetString("SEED_ADMIN_EMAIL")
	c.Seed.AdminPassword = v.GetString("SEED_ADMIN_PASSWORD")
	c.Seed.AdminName = v.GetString("SEED_ADMIN_NAME")

	return c, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
