package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/nftswap-network/nftswap-daemon/pkg/fixedpoint"
)

const (
	// DatadirKey is the local data directory to store the internal state of
	// the daemon.
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the
	// values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DbTypeKey is the backing store for pools and trades. Either "badger"
	// or "inmemory".
	DbTypeKey = "DB_TYPE"
	// ProtocolFeeKey is the process-wide fee fraction applied to every
	// trade across all pools, as a decimal string (ie. "0.005").
	ProtocolFeeKey = "PROTOCOL_FEE"
	// ProtocolFeeRecipientKey is the identifier the protocol fee share of
	// every trade is owed to.
	ProtocolFeeRecipientKey = "PROTOCOL_FEE_RECIPIENT"

	DbLocation = "db"

	// MaxProtocolFee is the inclusive cap on the protocol fee fraction.
	MaxProtocolFee = "0.10"
)

var vip *viper.Viper

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("NFTSWAP")
	vip.AutomaticEnv()

	defaultDatadir, _ := os.UserHomeDir()
	vip.SetDefault(DatadirKey, filepath.Join(defaultDatadir, ".nftswap-daemon"))
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DbTypeKey, "badger")
	vip.SetDefault(ProtocolFeeKey, "0.005")
	vip.SetDefault(ProtocolFeeRecipientKey, "protocol")

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

// GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetDatadir returns the data directory of the daemon.
func GetDatadir() string {
	return vip.GetString(DatadirKey)
}

// GetDbDir returns the db directory inside the datadir.
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

// GetProtocolFeeFraction returns the protocol fee as a fixed-point
// fraction.
func GetProtocolFeeFraction() *uint256.Int {
	frac, _ := fixedpoint.FromDecimalString(vip.GetString(ProtocolFeeKey))
	return frac
}

// GetProtocolFeeRecipient returns the protocol fee recipient.
func GetProtocolFeeRecipient() string {
	return vip.GetString(ProtocolFeeRecipientKey)
}

func validate() error {
	switch dbType := vip.GetString(DbTypeKey); dbType {
	case "badger", "inmemory":
	default:
		return fmt.Errorf("unsupported db type %s", dbType)
	}

	fee, err := decimal.NewFromString(vip.GetString(ProtocolFeeKey))
	if err != nil {
		return fmt.Errorf("invalid protocol fee: %w", err)
	}
	maxFee, _ := decimal.NewFromString(MaxProtocolFee)
	if fee.IsNegative() || fee.GreaterThan(maxFee) {
		return fmt.Errorf(
			"protocol fee must be between 0 and %s", MaxProtocolFee,
		)
	}

	if vip.GetString(ProtocolFeeRecipientKey) == "" {
		return fmt.Errorf("protocol fee recipient must not be empty")
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(GetDatadir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
