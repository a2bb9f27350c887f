package config

import (
	"encoding/json"
	"log"
	"os"
	"path"
	"strings"

	"github.com/c64tools/asmlens/grammar"
)

const defaultConfigPath = "asmlens.json"

type Config struct {
	DefaultDialect string            `json:"defaultDialect"`
	Extensions     map[string]string `json:"extensions"` // ".ext" to dialect name
	LogAddress     string            `json:"logAddress"`
}

var conf *Config

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DefaultDialect: "acme",
		Extensions: map[string]string{
			".a":    "acme",
			".acme": "acme",
			".kick": "kick",
			".ka":   "kick",
			".asm":  "kick",
			".tmpx": "tmpx",
			".tas":  "tmpx",
			".s":    "llvm",
		},
		LogAddress: ":8006",
	}
}

// GetConfig loads the configuration once. The file named by ASMLENS_CONFIG,
// or asmlens.json in the working directory, is merged over the defaults; a
// missing file leaves the defaults in place.
func GetConfig() *Config {
	if conf == nil {
		conf = Default()

		configPath := os.Getenv("ASMLENS_CONFIG")
		if configPath == "" {
			configPath = defaultConfigPath
		}

		b, e := os.ReadFile(configPath)
		if e != nil {
			return conf
		}

		e = conf.Merge(b)
		if e != nil {
			log.Fatalln("Error unmarshalling "+configPath+":", e)
		}
	}

	return conf
}

// Merge applies a JSON document over c. Extension mappings are added to the
// existing ones rather than replacing them.
func (c *Config) Merge(b []byte) error {
	loaded := Config{}
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}

	if loaded.DefaultDialect != "" {
		c.DefaultDialect = loaded.DefaultDialect
	}
	if loaded.LogAddress != "" {
		c.LogAddress = loaded.LogAddress
	}
	if c.Extensions == nil {
		c.Extensions = map[string]string{}
	}
	for ext, dialect := range loaded.Extensions {
		c.Extensions[strings.ToLower(ext)] = dialect
	}
	return nil
}

// DialectFor picks the dialect of a document from its file extension. uri may
// be a file path or a URI.
func (c *Config) DialectFor(uri string) grammar.Dialect {
	ext := strings.ToLower(path.Ext(uri))
	if name, ok := c.Extensions[ext]; ok {
		if d, ok := grammar.ParseDialect(name); ok {
			return d
		}
	}
	return c.Default()
}

// Default returns the configured fallback dialect.
func (c *Config) Default() grammar.Dialect {
	if d, ok := grammar.ParseDialect(c.DefaultDialect); ok {
		return d
	}
	return grammar.DialectAcme
}
