package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser parses user-defined arguments into flags
type Parser struct {
	flagSet *CommandFlagSet

	long  map[string]*CommandFlag
	short map[string]*CommandFlag
}

func NewParser(flagSet *CommandFlagSet) *Parser {
	if flagSet == nil {
		flagSet = NewFlagSet()
	}

	p := &Parser{
		flagSet: flagSet,
		long:    make(map[string]*CommandFlag),
		short:   make(map[string]*CommandFlag),
	}

	for _, flag := range flagSet.Flags {
		p.long[flag.Name] = flag
		if flag.Short != "" {
			p.short[flag.Short] = flag
		}
	}

	return p
}

func (p *Parser) Parse(raw []string) (*CommandArgs, error) {
	args := &CommandArgs{
		Args:  make([]string, 0),
		Flags: make(map[string]any),
		Raw:   raw,
	}

	for _, flag := range p.flagSet.Flags {
		if flag.Default != nil {
			args.Flags[flag.Name] = flag.Default
		}
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		switch {
		case arg == "--":
			args.Args = append(args.Args, raw[i+1:]...)
			i = len(raw)

		case strings.HasPrefix(arg, "--"):
			consumed, err := p.parseLong(args, arg, raw[i+1:])
			if err != nil {
				return nil, err
			}
			i += consumed

		case strings.HasPrefix(arg, "-") && arg != "-":
			consumed, err := p.parseShort(args, arg, raw[i+1:])
			if err != nil {
				return nil, err
			}
			i += consumed

		default:
			args.Args = append(args.Args, arg)
		}
	}

	for _, flag := range p.flagSet.Flags {
		if !flag.Required {
			continue
		}
		if _, ok := args.Flags[flag.Name]; ok {
			continue
		}

		if flag.Short != "" {
			return nil, fmt.Errorf("required flag: -%s / --%s", flag.Short, flag.Name)
		}
		return nil, fmt.Errorf("required flag: --%s", flag.Name)
	}

	return args, nil
}

// parseLong handles "--name", "--name=value" and "--name value".
// It returns how many of the following arguments were consumed.
func (p *Parser) parseLong(args *CommandArgs, arg string, rest []string) (int, error) {
	key, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")

	flag, exists := p.long[key]
	if !exists {
		return 0, fmt.Errorf("unknown flag: --%s", key)
	}

	if flag.Type == FlagBool && !hasValue {
		args.Flags[flag.Name] = true
		return 0, nil
	}

	consumed := 0
	if !hasValue {
		if len(rest) == 0 || strings.HasPrefix(rest[0], "-") {
			return 0, fmt.Errorf("flag --%s requires a value", key)
		}
		value = rest[0]
		consumed = 1
	}

	v, err := coerce(value, flag.Type)
	if err != nil {
		return 0, fmt.Errorf("flag --%s: %w", key, err)
	}

	args.Flags[flag.Name] = v
	return consumed, nil
}

// parseShort handles grouped shorthands like "-ra". A value flag takes the
// remainder of the group or, if it is last, the following argument.
func (p *Parser) parseShort(args *CommandArgs, arg string, rest []string) (int, error) {
	group := arg[1:]

	for j, r := range group {
		short := string(r)

		flag, exists := p.short[short]
		if !exists {
			return 0, fmt.Errorf("unknown flag: -%s", short)
		}

		if flag.Type == FlagBool {
			args.Flags[flag.Name] = true
			continue
		}

		value, consumed := group[j+len(short):], 0
		if value == "" {
			if len(rest) == 0 || strings.HasPrefix(rest[0], "-") {
				return 0, fmt.Errorf("flag -%s requires a value", short)
			}
			value, consumed = rest[0], 1
		}

		v, err := coerce(value, flag.Type)
		if err != nil {
			return 0, fmt.Errorf("flag -%s: %w", short, err)
		}

		args.Flags[flag.Name] = v
		return consumed, nil
	}

	return 0, nil
}

func coerce(value string, typeStr string) (any, error) {
	switch typeStr {
	case FlagInt:
		return strconv.ParseInt(value, 10, 64)
	case FlagBool:
		return strconv.ParseBool(value)
	default:
		return value, nil
	}
}
