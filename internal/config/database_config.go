package config

import "time"

type Database struct {
	MongoURI     string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName string        `env:"MONGODB_DB_NAME" envDefault:"contact_management_app"`
	Timeout      time.Duration `env:"MONGODB_TIMEOUT" envDefault:"10s"`
}

var _ DatabaseConfig = Database{}

func (d Database) GetMongoURI() string {
	return d.MongoURI
}

func (d Database) GetDatabaseName() string {
	return d.DatabaseName
}

func (d Database) GetDatabaseTimeout() time.Duration {
	if d.Timeout <= 0 {
		return 10 * time.Second
	}
	return d.Timeout
}
