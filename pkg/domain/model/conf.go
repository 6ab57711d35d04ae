package model

// Exchange 取引所向け設定
type Exchange struct {
	AccessKey string `toml:"access_key" split_words:"true"`
	SecretKey string `toml:"secret_key" split_words:"true"`
}

// DB DB用設定
type DB struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Name     string `toml:"name"`
	UserName string `toml:"user_name" split_words:"true"`
	Password string `toml:"password"`
}
