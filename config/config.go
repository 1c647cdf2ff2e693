// Package config 从环境变量加载运行配置，并读取 YAML 账户夹具。
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"dci/errors"
	"dci/validation"
)

// Config 示例程序配置
type Config struct {
	LogLevel  string `env:"DCI_LOG_LEVEL"  envDefault:"info"    validate:"oneof=debug info warn error"`
	LogFormat string `env:"DCI_LOG_FORMAT" envDefault:"text"    validate:"oneof=text json console"`
	Sink      string `env:"DCI_SINK"       envDefault:"console" validate:"oneof=console memory sqlite redis nats"`
	Locale    string `env:"DCI_LOCALE"     envDefault:"en"      validate:"required"`

	SQLiteDSN   string `env:"DCI_SQLITE_DSN"   envDefault:"file:dci_report?mode=memory&cache=shared" validate:"required_if=Sink sqlite"`
	RedisAddr   string `env:"DCI_REDIS_ADDR"   validate:"required_if=Sink redis"`
	RedisStream string `env:"DCI_REDIS_STREAM" envDefault:"dci:report"`
	NATSURL     string `env:"DCI_NATS_URL"     validate:"required_if=Sink nats"`
	NATSSubject string `env:"DCI_NATS_SUBJECT" envDefault:"dci.report"`

	// FixturePath 为空时示例使用内置账户
	FixturePath string `env:"DCI_FIXTURE"`
	Metrics     bool   `env:"DCI_METRICS" envDefault:"false"`
}

// Load 解析并校验环境变量
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.WrapError(err, errors.ErrCodeInvalidInput, "parse env")
	}
	if err := validation.ValidateStruct(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AccountFixture 一个初始账户
type AccountFixture struct {
	ID      string `yaml:"id"      validate:"required"`
	Balance int64  `yaml:"balance" validate:"gte=0"`
}

// TransferFixture 一笔转账
type TransferFixture struct {
	From   string `yaml:"from"   validate:"required"`
	To     string `yaml:"to"     validate:"required,nefield=From"`
	Amount int64  `yaml:"amount" validate:"gt=0"`
}

// Fixture 示例数据
type Fixture struct {
	Accounts  []AccountFixture  `yaml:"accounts"  validate:"required,min=1,dive"`
	Transfers []TransferFixture `yaml:"transfers" validate:"dive"`
}

// Account 按 ID 查找账户
func (f *Fixture) Account(id string) (AccountFixture, bool) {
	for _, a := range f.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return AccountFixture{}, false
}

// LoadFixture 读取并校验 YAML 夹具；转账引用的账户必须存在
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrCodeNotFound, "read fixture").WithContext("path", path)
	}
	return ParseFixture(data)
}

// ParseFixture 解析 YAML 夹具
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapError(err, errors.ErrCodeInvalidInput, "decode fixture")
	}
	if err := validation.ValidateStruct(&f); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(f.Accounts))
	for _, a := range f.Accounts {
		if _, ok := seen[a.ID]; ok {
			return nil, errors.NewError(errors.ErrCodeValidation,
				fmt.Sprintf("duplicate account %s", a.ID)).WithContext("account", a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	for _, t := range f.Transfers {
		for _, id := range []string{t.From, t.To} {
			if _, ok := seen[id]; !ok {
				return nil, errors.NewError(errors.ErrCodeValidation,
					fmt.Sprintf("transfer references unknown account %s", id)).WithContext("account", id)
			}
		}
	}
	return &f, nil
}
