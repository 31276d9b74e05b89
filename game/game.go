package game

import (
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var Log = logrus.New()

type GameConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Cells closer than this to the first click are never mines
	SafeDist float64 `yaml:"safe_dist"`
	// Probability of any other cell being a mine
	BombSpawnChance float64 `yaml:"bomb_chance"`

	// Seed for mine placement; zero picks one from the clock
	Seed int64 `yaml:"seed"`

	// Name of the computer player, empty for a human
	Director string `yaml:"director"`
	// Pause between director actions
	Delay time.Duration `yaml:"delay"`

	Color bool `yaml:"color"`
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Width:           10,
		Height:          10,
		SafeDist:        DefaultSafeDist,
		BombSpawnChance: DefaultBombSpawnChance,
		Delay:           200 * time.Millisecond,
		Color:           true,
	}
}

// LoadGameConfig reads a yaml config file. Keys missing from the file keep
// their NewGameConfig defaults.
func LoadGameConfig(path string) (GameConfig, error) {
	config := NewGameConfig()

	in, err := ioutil.ReadFile(path)
	if err != nil {
		return config, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.UnmarshalStrict(in, &config); err != nil {
		return config, errors.Wrapf(err, "parsing config %s", path)
	}

	return config, config.Validate()
}

func (config GameConfig) Validate() error {
	switch {
	case config.Width < 1 || config.Height < 1:
		return errors.Wrapf(ErrInvalidConfig, "board must be at least 1x1, got %dx%d", config.Width, config.Height)
	case config.SafeDist < 0:
		return errors.Wrapf(ErrInvalidConfig, "negative safe distance %v", config.SafeDist)
	case config.BombSpawnChance < 0 || config.BombSpawnChance > 1:
		return errors.Wrapf(ErrInvalidConfig, "bomb chance %v not within [0, 1]", config.BombSpawnChance)
	case config.Delay < 0:
		return errors.Wrapf(ErrInvalidConfig, "negative delay %v", config.Delay)
	}
	return nil
}

// NewBoard creates an ungenerated board for the config
func (config GameConfig) NewBoard(random Rand) (*Board, error) {
	return NewBoard(BoardConfig{
		Rows:            config.Height,
		Cols:            config.Width,
		SafeDist:        config.SafeDist,
		BombSpawnChance: config.BombSpawnChance,
		Rand:            random,
	})
}

// NewController creates a controller around a fresh board for the config
func (config GameConfig) NewController(random Rand) (*Controller, error) {
	board, err := config.NewBoard(random)
	if err != nil {
		return nil, err
	}
	return NewController(board), nil
}
