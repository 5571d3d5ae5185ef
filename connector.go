package mongosettings

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	mongostore "github.com/unkn0wn-root/mongosettings/store/mongo"
)

// Connector describes how to reach the collection that holds remote fields.
type Connector struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	Database   string `mapstructure:"db"`
	Collection string `mapstructure:"collection"`
}

// ConnectorProvider is implemented by settings types that hold remote fields.
// Returning nil is the same as not implementing it.
type ConnectorProvider interface {
	MongoConnector() *Connector
}

var connectorKeys = []string{"host", "port", "username", "password", "db", "collection"}

// Validate checks that the connector names a host and a collection.
func (c *Connector) Validate() error {
	var missing []string
	if c.Host == "" {
		missing = append(missing, "host")
	}
	if c.Database == "" {
		missing = append(missing, "db")
	}
	if c.Collection == "" {
		missing = append(missing, "collection")
	}
	if len(missing) > 0 {
		return fmt.Errorf("mongosettings: connector: missing %s", strings.Join(missing, ", "))
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("mongosettings: connector: invalid port %d", c.Port)
	}
	return nil
}

func (c *Connector) storeConfig() mongostore.Config {
	return mongostore.Config{
		Host:       c.Host,
		Port:       c.Port,
		Username:   c.Username,
		Password:   c.Password,
		Database:   c.Database,
		Collection: c.Collection,
	}
}

// LoadConnector reads a Connector from environment variables and an optional
// config file. Environment variables use prefix and an underscore, e.g. with
// prefix "MONGO": MONGO_HOST, MONGO_PORT, MONGO_USERNAME, MONGO_PASSWORD,
// MONGO_DB, MONGO_COLLECTION. Environment wins over the file; a missing file
// is ignored. Port defaults to 27017.
func LoadConnector(prefix, file string) (*Connector, error) {
	v := viper.New()
	v.SetDefault("port", mongostore.DefaultPort)
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range connectorKeys {
		_ = v.BindEnv(k)
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("mongosettings: read %s: %w", file, err)
			}
		}
	}

	var c Connector
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
