package cli

import (
	"errors"
	"io"

	"github.com/spf13/pflag"
)

var ErrMissingArgs = errors.New("--source, --target and --amount are required unless --list, --interactive or --serve is given")

type Mode int

const (
	ModeConvert Mode = iota
	ModeList
	ModeInteractive
	ModeServe
)

type Options struct {
	Source     string
	Target     string
	Amount     float64
	Mode       Mode
	ConfigPath string
}

// ParseArgs reads command line flags, args excluding the program name.
// --serve wins over --list, which wins over --interactive.
func ParseArgs(args []string, usageOut io.Writer) (Options, error) {
	var (
		opts                     Options
		list, interactive, serve bool
	)

	fs := pflag.NewFlagSet("fxconvert", pflag.ContinueOnError)
	fs.SetOutput(usageOut)
	fs.StringVarP(&opts.Source, "source", "s", "", "Source currency code (e.g., USD)")
	fs.StringVarP(&opts.Target, "target", "t", "", "Target currency code (e.g., EUR)")
	fs.Float64VarP(&opts.Amount, "amount", "a", 0, "Amount to be converted")
	fs.BoolVar(&list, "list", false, "Lists all available currencies and their current exchange rates")
	fs.BoolVarP(&interactive, "interactive", "i", false, "Run the program in interactive mode")
	fs.BoolVar(&serve, "serve", false, "Start the HTTP API instead of converting once")
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to a YAML config file")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}

	switch {
	case serve:
		opts.Mode = ModeServe
	case list:
		opts.Mode = ModeList
	case interactive:
		opts.Mode = ModeInteractive
	default:
		opts.Mode = ModeConvert
		if opts.Source == "" || opts.Target == "" || !fs.Changed("amount") {
			return Options{}, ErrMissingArgs
		}
	}
	return opts, nil
}
