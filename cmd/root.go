package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/they4kman/safesweep/director/constraint"
	"github.com/they4kman/safesweep/director/random"
	"github.com/they4kman/safesweep/game"
	"github.com/they4kman/safesweep/term"
)

var flagConfig = game.NewGameConfig()
var configPath string
var noColor bool
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "safesweep",
	Short: "Play Minesweeper with a guaranteed safe first click",
	Long: `safesweep is a terminal Minesweeper game. The first cell revealed and
everything within the safe distance of it never holds a mine.

Run with no arguments to play manually
	safesweep

Use the director flag to make the computer play for you
	safesweep --director constraint
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging()

		seed := config.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		game.Log.WithFields(logrus.Fields{
			"seed":   seed,
			"width":  config.Width,
			"height": config.Height,
		}).Info("starting game")

		source := rand.New(rand.NewSource(seed))
		newController := func() (*game.Controller, error) {
			return config.NewController(source)
		}
		options := term.Options{Color: config.Color}

		if config.Director != "" {
			return runDirected(cmd.Context(), cmd.OutOrStdout(), config, source, newController, options)
		}
		return term.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), options, newController).Run()
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

var directors = map[string]func(source *rand.Rand) game.Director{
	"random": func(source *rand.Rand) game.Director {
		return random.New(source)
	},
	"constraint": func(source *rand.Rand) game.Director {
		return constraint.New(source)
	},
}

type directorValue string

func newDirectorValue(val string, p *string) *directorValue {
	*p = val
	return (*directorValue)(p)
}

func (directorVal *directorValue) String() string {
	return string(*directorVal)
}

func (directorVal *directorValue) Set(value string) error {
	if _, isValid := directors[value]; !isValid && value != "" {
		return fmt.Errorf("invalid director, choose one of %v", directorNames())
	}
	*directorVal = directorValue(value)
	return nil
}

func (directorVal *directorValue) Type() string {
	return "director"
}

func directorNames() []string {
	names := make([]string, 0, len(directors))
	for name := range directors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.Flags().Bool("help", false, "Help for this command")

	rootCmd.Flags().IntVarP(&flagConfig.Width, "width", "w", flagConfig.Width, "Width of game board, in cells")
	rootCmd.Flags().IntVarP(&flagConfig.Height, "height", "h", flagConfig.Height, "Height of game board, in cells")
	rootCmd.Flags().Float64Var(&flagConfig.SafeDist, "safe-dist", flagConfig.SafeDist, "Cells closer than this to the first click are never mines")
	rootCmd.Flags().Float64Var(&flagConfig.BombSpawnChance, "bomb-chance", flagConfig.BombSpawnChance, "Probability of any other cell being a mine")
	rootCmd.Flags().Int64Var(&flagConfig.Seed, "seed", 0, "Seed for mine placement (default: from the clock)")
	rootCmd.Flags().VarP(newDirectorValue("", &flagConfig.Director), "director", "d", fmt.Sprintf(`Make the computer play, one of %v
random: reveals random cells
constraint: deduces moves from revealed numbers, guessing only when stuck`, directorNames()))
	rootCmd.Flags().DurationVar(&flagConfig.Delay, "delay", flagConfig.Delay, "Pause between director moves")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a yaml game config; flags override its values")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

// loadConfig reads the config file, if any, and applies the flags set
// explicitly on the command line on top of it
func loadConfig(flags *pflag.FlagSet) (game.GameConfig, error) {
	config := game.NewGameConfig()
	if configPath != "" {
		var err error
		if config, err = game.LoadGameConfig(configPath); err != nil {
			return config, err
		}
	}

	overrides := map[string]func(){
		"width":       func() { config.Width = flagConfig.Width },
		"height":      func() { config.Height = flagConfig.Height },
		"safe-dist":   func() { config.SafeDist = flagConfig.SafeDist },
		"bomb-chance": func() { config.BombSpawnChance = flagConfig.BombSpawnChance },
		"seed":        func() { config.Seed = flagConfig.Seed },
		"director":    func() { config.Director = flagConfig.Director },
		"delay":       func() { config.Delay = flagConfig.Delay },
		"no-color":    func() { config.Color = !noColor },
	}
	flags.VisitAll(func(flag *pflag.Flag) {
		if override, ok := overrides[flag.Name]; ok && flag.Changed {
			override()
		}
	})

	if _, ok := directors[config.Director]; !ok && config.Director != "" {
		return config, errors.Wrapf(game.ErrInvalidConfig, "unknown director %q", config.Director)
	}
	return config, config.Validate()
}

func setupLogging() {
	logLevel := logrus.InfoLevel
	if verbose {
		logLevel = logrus.DebugLevel
	}
	game.Log.SetLevel(logLevel)
	game.Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
