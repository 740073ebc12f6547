package model

// ConfigEntry is a scalar setting stored as a string.
type ConfigEntry struct {
	Key   string `gorm:"column:key;primaryKey" json:"key"`
	Value string `gorm:"column:value" json:"value"`
}

func (ConfigEntry) TableName() string {
	return "configuration"
}

const (
	// ConfigKeyUSDRate holds how many units of local currency buy one USD.
	ConfigKeyUSDRate = "usd_cdf_rate"

	// DefaultUSDRate is used when the rate is missing or unparsable.
	DefaultUSDRate = 2750.0
)
