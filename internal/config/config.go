package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// DBConfig holds the postgres connection settings for the snapshot mirror.
type DBConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// SnapshotConfig holds the local snapshot mirror settings. Dir is where the
// sqlite fallback file lives when postgres is unreachable.
type SnapshotConfig struct {
	Enabled bool     `json:"enabled" mapstructure:"enabled"`
	Dir     string   `json:"dir" mapstructure:"dir"`
	DB      DBConfig `json:"db" mapstructure:"db"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./omglogs")
	viper.SetDefault("locale", "en")

	viper.SetDefault("api.serverUrl", "http://localhost:8000")

	viper.SetDefault("icons.dir", "./images/icons")
	viper.SetDefault("icons.default", "default.png")
	viper.SetDefault("icons.urlPath", "images/icons")

	viper.SetDefault("notify.seconds", 4)

	viper.SetDefault("snapshot.enabled", false)
	viper.SetDefault("snapshot.dir", "./snapshots")
	viper.SetDefault("snapshot.db.host", "localhost")
	viper.SetDefault("snapshot.db.port", "5432")
	viper.SetDefault("snapshot.db.username", "postgres")
	viper.SetDefault("snapshot.db.password", "postgres")
	viper.SetDefault("snapshot.db.database", "omg")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "omg-metrics")
	viper.SetDefault("influx.bucket", "omg_client")

	viper.SetConfigName("omg_client.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetSnapshotConfig returns the snapshot mirror settings.
func GetSnapshotConfig() SnapshotConfig {
	return SnapshotConfig{
		Enabled: viper.GetBool("snapshot.enabled"),
		Dir:     viper.GetString("snapshot.dir"),
		DB: DBConfig{
			Host:     viper.GetString("snapshot.db.host"),
			Port:     viper.GetString("snapshot.db.port"),
			Username: viper.GetString("snapshot.db.username"),
			Password: viper.GetString("snapshot.db.password"),
			Database: viper.GetString("snapshot.db.database"),
		},
	}
}
