package database

// Config selects and addresses the inventory database.
type Config struct {
	// Driver is mysql, postgres or sqlite.
	Driver   string `mapstructure:"driver" default:"mysql"`
	Host     string `mapstructure:"host" default:"localhost"`
	Port     int    `mapstructure:"port" default:"3306"`
	User     string `mapstructure:"user" default:"root"`
	Password string `mapstructure:"password" default:""`
	// Name is the schema name, or the file path (":memory:" allowed) for sqlite.
	Name string `mapstructure:"name" default:"inventory"`
	// TimeoutSeconds bounds connection setup and each read or write.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
