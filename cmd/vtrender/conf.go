package main

import (
	"os"

	"github.com/spf13/viper"
)

var conf *Conf

// Conf is the configuration file layout.
type Conf struct {
	App struct {
		Version string `toml:"version"`
		Title   string `toml:"title"`
	} `toml:"app"`
	Style struct {
		Path string `toml:"path"`
	} `toml:"style"`
	Source struct {
		Tile    string `toml:"tile"`
		MBTiles string `toml:"mbtiles"`
		Zoom    int    `toml:"zoom"`
		X       int    `toml:"x"`
		Y       int    `toml:"y"`
		All     bool   `toml:"all"`
	} `toml:"source"`
	Render struct {
		Size        int     `toml:"size"`
		Scale       float64 `toml:"scale"`
		MaxTileSize int64   `toml:"maxTileSize"`
		MaxLayers   int     `toml:"maxLayers"`
		MaxFeatures int     `toml:"maxFeatures"`
	} `toml:"render"`
	Sprite struct {
		Prefix    string `toml:"prefix"`
		CacheSize int64  `toml:"cacheSize"`
	} `toml:"sprite"`
	Fonts struct {
		Dir string `toml:"dir"`
	} `toml:"fonts"`
	Output struct {
		Path           string `toml:"path"`
		Pretty         bool   `toml:"pretty"`
		LogDir         string `toml:"logDir"`
		OutputTerminal bool   `toml:"outputTerminal"`
	} `toml:"output"`
}

// InitConf reads cfgFile, if given, and environment variables on top of
// the defaults.
func InitConf(cfgFile string) {
	viper.SetConfigType("toml")
	viper.AutomaticEnv()
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			log.Fatalf("config file(%s) not exist", cfgFile)
		}
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Warnf("read config file(%s) error, details: %s", viper.ConfigFileUsed(), err)
		}
	}

	viper.SetDefault("app.version", "v0.1.0")
	viper.SetDefault("app.title", "vtrender")
	viper.SetDefault("render.size", 512)
	viper.SetDefault("render.scale", 1.0)
	viper.SetDefault("render.maxTileSize", 64<<20)
	viper.SetDefault("sprite.cacheSize", 16<<20)
	viper.SetDefault("output.outputTerminal", true)

	if err := viper.Unmarshal(&conf); err != nil {
		log.Fatalf("parse config: %v", err)
	}
}
