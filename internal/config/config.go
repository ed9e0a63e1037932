package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/photo-memories/internal/geo"
	"github.com/kozaktomas/photo-memories/internal/memories"
	"github.com/kozaktomas/photo-memories/internal/memories/vacation"
)

//go:embed detection.yaml
var detectionYAML []byte

type Config struct {
	PhotoPrism PhotoPrismConfig
	Database   DatabaseConfig
	Home       HomeConfig
	Memories   MemoriesConfig
	Detection  vacation.Options
}

type PhotoPrismConfig struct {
	URL         string
	Username    string
	Password    string
	DatabaseURL string // MariaDB DSN for direct database access (e.g., photoprism:photoprism@tcp(mariadb:3306)/photoprism)
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

// HomeConfig is the optional fixed home anchor. When Lat/Lon are unset, home
// is inferred from the photo corpus instead.
type HomeConfig struct {
	Lat      float64
	Lon      float64
	RadiusKm float64
	Set      bool // true when HOME_LAT and HOME_LON were both provided
}

// Home returns the configured anchor, or nil to request inference.
func (h HomeConfig) Home() *memories.Home {
	if !h.Set {
		return nil
	}
	return &memories.Home{
		Point:    geo.Point{Lat: h.Lat, Lon: h.Lon},
		RadiusKm: h.RadiusKm,
	}
}

type MemoriesConfig struct {
	Lang     string // BCP 47 tag for cluster labels (default "en")
	Region   string // ISO country code for the holiday calendar
	APIToken string // bearer token protecting the write API, empty disables auth
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable as a float. Returns the default
// when unset or unparseable.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	var detection vacation.Options
	if err := yaml.Unmarshal(detectionYAML, &detection); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded detection.yaml: " + err.Error())
	}
	if path := os.Getenv("DETECTION_CONFIG_PATH"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			// Overrides layer on top of the embedded defaults; unknown keys
			// in the file are a configuration error worth failing loudly on.
			if err := yaml.Unmarshal(data, &detection); err != nil {
				panic("failed to parse " + path + ": " + err.Error())
			}
		}
	}

	_, latSet := os.LookupEnv("HOME_LAT")
	_, lonSet := os.LookupEnv("HOME_LON")

	return &Config{
		PhotoPrism: PhotoPrismConfig{
			URL:         os.Getenv("PHOTOPRISM_URL"),
			Username:    os.Getenv("PHOTOPRISM_USERNAME"),
			Password:    os.Getenv("PHOTOPRISM_PASSWORD"),
			DatabaseURL: os.Getenv("PHOTOPRISM_DATABASE_URL"),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Home: HomeConfig{
			Lat:      envFloat("HOME_LAT", 0),
			Lon:      envFloat("HOME_LON", 0),
			RadiusKm: envFloat("HOME_RADIUS_KM", 0),
			Set:      latSet && lonSet,
		},
		Memories: MemoriesConfig{
			Lang:     envString("MEMORIES_LANG", "en"),
			Region:   envString("MEMORIES_REGION", ""),
			APIToken: os.Getenv("MEMORIES_API_TOKEN"),
		},
		Detection: detection,
	}
}
