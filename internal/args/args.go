// Package args hand-parses spaceshot's argv the way
// original_source/src/args.c does: modes are positional, options follow,
// and a leading '-' is only a flag if the next character isn't a digit
// (so negative region coordinates survive). spec.md §6 fleshes out the
// options table the original left as a TODO.
package args

import (
	"fmt"
	"strings"

	"github.com/Mabi19/spaceshot/internal/bbox"
)

// Mode names the chosen subcommand.
type Mode int

const (
	ModeHelp Mode = iota
	ModeVersion
	ModeOutput
	ModeRegion
	ModeDefer
)

// Arguments is the fully parsed command line.
type Arguments struct {
	Mode Mode

	OutputName string // ModeOutput; always set, since Parse rejects 'output' without a name

	HasRegion  bool // ModeRegion with an explicit region given
	Region     bbox.Box
	RegionOutputName string

	Background    bool
	Copy          bool
	CopyExplicit  bool // true once -c/--copy or --no-copy was seen
	ConfigFile    string
	Notify        bool
	NotifyExplicit bool
	OutputFile    string
	Verbose       bool
}

// Error is a parse failure; the caller prints Message to stderr (already
// formatted with the program name) and exits 1.
type Error struct {
	Message string
	Usage   bool
}

func (e *Error) Error() string { return e.Message }

// Parse parses argv (not including argv[0]); prog is argv[0], used only
// for error messages.
func Parse(prog string, argv []string) (*Arguments, error) {
	if len(argv) == 0 {
		return nil, &Error{Message: fmt.Sprintf("%s: mode is required\nTry '%s --help' for more information.", prog, prog), Usage: true}
	}

	result := &Arguments{Copy: false, Notify: true}

	mode := argv[0]
	switch mode {
	case "help", "--help", "-h":
		result.Mode = ModeHelp
		return result, nil
	case "version", "--version", "-v":
		result.Mode = ModeVersion
		return result, nil
	case "output":
		result.Mode = ModeOutput
	case "region":
		result.Mode = ModeRegion
	case "defer":
		result.Mode = ModeDefer
	default:
		msg := fmt.Sprintf("%s: invalid mode %s\nValid modes are 'output <output-name>' and 'region [output-region] [output-name]'", prog, mode)
		if strings.HasPrefix(mode, "-") {
			msg += "\nnote: flags must be specified after the mode"
		}
		return nil, &Error{Message: msg}
	}

	capturedParams := 0
	rest := argv[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		if isFlag(arg) {
			consumed, err := parseFlag(prog, result, arg, rest[i+1:])
			if err != nil {
				return nil, err
			}
			i += consumed
			continue
		}

		switch result.Mode {
		case ModeOutput:
			if capturedParams != 0 {
				return nil, &Error{Message: fmt.Sprintf("%s: too many parameters for mode 'output' (max 1)", prog)}
			}
			result.OutputName = arg
		case ModeRegion:
			switch capturedParams {
			case 0:
				r, err := bbox.Parse(arg)
				if err != nil {
					return nil, &Error{Message: fmt.Sprintf("%s: invalid region\nregion format is 'X,Y WxH'", prog)}
				}
				result.Region = r
				result.HasRegion = true
			case 1:
				result.RegionOutputName = arg
			default:
				return nil, &Error{Message: fmt.Sprintf("%s: too many parameters for mode 'region' (max 2)", prog)}
			}
		default:
			return nil, &Error{Message: fmt.Sprintf("%s: mode %v does not take positional parameters", prog, result.Mode)}
		}
		capturedParams++
	}

	if result.Mode == ModeOutput && capturedParams < 1 {
		return nil, &Error{Message: fmt.Sprintf("%s: an output name is required", prog)}
	}

	return result, nil
}

// isFlag applies spec.md §6's rule: a leading '-' is a flag unless
// followed immediately by a digit (region coordinates may be negative).
func isFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	return arg[1] < '0' || arg[1] > '9'
}

// parseFlag handles one flag, possibly clustered short flags, possibly a
// trailing `=value` or a following argv entry for its value. It returns
// how many additional rest[] entries it consumed.
func parseFlag(prog string, a *Arguments, arg string, trailing []string) (int, error) {
	if strings.HasPrefix(arg, "--") {
		return parseLongFlag(prog, a, arg, trailing)
	}
	return parseShortCluster(prog, a, arg, trailing)
}

func parseLongFlag(prog string, a *Arguments, arg string, trailing []string) (int, error) {
	name, value, hasValue := strings.Cut(arg[2:], "=")
	takeValue := func() (string, int, error) {
		if hasValue {
			return value, 0, nil
		}
		if len(trailing) == 0 {
			return "", 0, &Error{Message: fmt.Sprintf("%s: option '--%s' requires an argument", prog, name)}
		}
		return trailing[0], 1, nil
	}

	switch name {
	case "background":
		a.Background = true
	case "copy":
		a.Copy, a.CopyExplicit = true, true
	case "no-copy":
		a.Copy, a.CopyExplicit = false, true
	case "notify":
		a.Notify, a.NotifyExplicit = true, true
	case "no-notify":
		a.Notify, a.NotifyExplicit = false, true
	case "verbose":
		a.Verbose = true
	case "help":
		a.Mode = ModeHelp
	case "version":
		a.Mode = ModeVersion
	case "config-file":
		v, n, err := takeValue()
		if err != nil {
			return 0, err
		}
		a.ConfigFile = v
		return n, nil
	case "output-file":
		v, n, err := takeValue()
		if err != nil {
			return 0, err
		}
		a.OutputFile = v
		return n, nil
	default:
		return 0, &Error{Message: fmt.Sprintf("%s: unknown option '--%s'", prog, name)}
	}
	return 0, nil
}

// parseShortCluster handles e.g. -bc or -o value or -ovalue; an argument
// taking short option must be last in its cluster (spec.md §6).
func parseShortCluster(prog string, a *Arguments, arg string, trailing []string) (int, error) {
	letters := arg[1:]
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		last := i == len(letters)-1
		switch c {
		case 'b':
			a.Background = true
		case 'c':
			a.Copy, a.CopyExplicit = true, true
		case 'n':
			a.Notify, a.NotifyExplicit = true, true
		case 'h':
			a.Mode = ModeHelp
		case 'v':
			a.Mode = ModeVersion
		case 'C', 'o':
			var value string
			var consumed int
			if !last {
				value = letters[i+1:]
			} else if len(trailing) > 0 {
				value = trailing[0]
				consumed = 1
			} else {
				return 0, &Error{Message: fmt.Sprintf("%s: option '-%c' requires an argument", prog, c)}
			}
			if c == 'C' {
				a.ConfigFile = value
			} else {
				a.OutputFile = value
			}
			return consumed, nil
		default:
			return 0, &Error{Message: fmt.Sprintf("%s: unknown option '-%c'", prog, c)}
		}
	}
	return 0, nil
}

// ParseDeferredArgv re-parses a NUL-delimited argument vector read from
// stdin during the defer protocol (spec.md §6's Defer stdin format),
// reusing this same parser for the "mode [mode-args] [options]" tail.
func ParseDeferredArgv(prog string, fields []string) (*Arguments, error) {
	return Parse(prog, fields)
}
