package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags, comma separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name      string
	Desc      string
	Flags     []flagDef
	TakesDirs bool     // accepts a directory argument
	Args      []string // fixed argument values
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"page-size":   {Values: []string{"a3", "a4", "a5", "letter", "legal"}},
	"orientation": {Values: []string{"portrait", "landscape"}},

	// File flags with glob patterns
	"config": {FileGlob: "*.yaml,*.yml"},
	"style":  {FileGlob: "*.yaml,*.yml"},

	// Directory flags
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:      cmdConvert,
			Desc:      "Convert the markdown files of a directory to PDF",
			Flags:     extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			TakesDirs: true,
		},
		{Name: cmdVersion, Desc: "Show version information"},
		{Name: cmdHelp, Desc: "Show help for a command", Args: []string{cmdConvert, cmdVersion, cmdHelp, cmdCompletion}},
		{Name: cmdCompletion, Desc: "Generate shell completion script", Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)}},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(mdpdf completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(mdpdf completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    mdpdf completion fish > ~/.config/fish/completions/mdpdf.fish")
}

// completionWriter accumulates script lines and keeps the first write error.
type completionWriter struct {
	w   io.Writer
	err error
}

func (c *completionWriter) line(format string, args ...any) {
	if c.err != nil {
		return
	}
	_, c.err = fmt.Fprintf(c.w, format+"\n", args...)
}

// commandNames returns the names of cmds separated by spaces.
func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// flagWords returns every spelling of the flags, e.g. "-o --output".
func flagWords(flags []flagDef) string {
	var words []string
	for _, f := range flags {
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
		words = append(words, "--"+f.Long)
	}
	return strings.Join(words, " ")
}

// takesValue reports whether a flag consumes the next word.
func takesValue(f flagDef) bool {
	return f.Type != flagBool
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	cw := &completionWriter{w: w}

	cw.line("# bash completion for mdpdf")
	cw.line("_mdpdf() {")
	cw.line("    local cur prev cmd")
	cw.line("    cur=\"${COMP_WORDS[COMP_CWORD]}\"")
	cw.line("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"")
	cw.line("    cmd=\"convert\"")
	cw.line("    if [[ ${COMP_CWORD} -gt 1 ]]; then")
	cw.line("        case \"${COMP_WORDS[1]}\" in")
	cw.line("            %s) cmd=\"${COMP_WORDS[1]}\" ;;", strings.ReplaceAll(commandNames(cmds), " ", "|"))
	cw.line("        esac")
	cw.line("    fi")
	cw.line("")
	cw.line("    case \"${cmd}\" in")
	for _, c := range cmds {
		cw.line("        %s)", c.Name)
		if c.Name == cmdConvert {
			cw.line("            case \"${prev}\" in")
			for _, f := range c.Flags {
				if !takesValue(f) {
					continue
				}
				pattern := "--" + f.Long
				if f.Short != "" {
					pattern = "-" + f.Short + "|" + pattern
				}
				switch f.Type {
				case flagEnum:
					cw.line("                %s) COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\")); return ;;", pattern, strings.Join(f.Values, " "))
				case flagDir:
					cw.line("                %s) COMPREPLY=($(compgen -d -- \"${cur}\")); return ;;", pattern)
				case flagFile:
					cw.line("                %s) COMPREPLY=($(compgen -f -- \"${cur}\")); return ;;", pattern)
				default:
					cw.line("                %s) return ;;", pattern)
				}
			}
			cw.line("            esac")
			cw.line("            if [[ \"${cur}\" == -* ]]; then")
			cw.line("                COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))", flagWords(c.Flags))
			cw.line("            elif [[ ${COMP_CWORD} -eq 1 ]]; then")
			cw.line("                COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\") $(compgen -d -- \"${cur}\"))", commandNames(cmds))
			cw.line("            else")
			cw.line("                COMPREPLY=($(compgen -d -- \"${cur}\"))")
			cw.line("            fi")
		} else if len(c.Args) > 0 {
			cw.line("            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))", strings.Join(c.Args, " "))
		}
		cw.line("            ;;")
	}
	cw.line("    esac")
	cw.line("}")
	cw.line("complete -F _mdpdf mdpdf")
	return cw.err
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	cw := &completionWriter{w: w}

	cw.line("#compdef mdpdf")
	cw.line("")
	cw.line("_mdpdf() {")
	cw.line("    local -a commands")
	cw.line("    commands=(")
	for _, c := range cmds {
		cw.line("        '%s:%s'", c.Name, zshEscape(c.Desc))
	}
	cw.line("    )")
	cw.line("")
	cw.line("    case \"${words[2]}\" in")
	for _, c := range cmds {
		if c.Name == cmdConvert {
			continue
		}
		cw.line("        %s)", c.Name)
		if len(c.Args) > 0 {
			cw.line("            _values '%s' %s", c.Name, strings.Join(c.Args, " "))
		}
		cw.line("            return ;;")
	}
	cw.line("    esac")
	cw.line("")
	cw.line("    _arguments -s \\")
	for _, c := range cmds {
		if c.Name != cmdConvert {
			continue
		}
		for _, f := range c.Flags {
			cw.line("        %s \\", zshFlagSpec(f))
		}
	}
	cw.line("        '1: :{_describe command commands; _files -/}' \\")
	cw.line("        '*: :_files -/'")
	cw.line("}")
	cw.line("")
	cw.line("compdef _mdpdf mdpdf")
	return cw.err
}

// zshFlagSpec renders one _arguments spec for f.
func zshFlagSpec(f flagDef) string {
	names := "--" + f.Long
	if f.Short != "" {
		names = "{-" + f.Short + ",--" + f.Long + "}"
	}
	desc := "[" + zshEscape(f.Desc) + "]"

	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagDir:
		action = ":" + f.Long + ":_files -/"
	case flagFile:
		globs := strings.Split(f.FileGlob, ",")
		action = ":" + f.Long + ":_files -g \"" + strings.Join(globs, " ") + "\""
	default:
		action = ":" + f.Long + ":"
	}
	if f.Short != "" {
		return names + "'" + desc + action + "'"
	}
	return "'" + names + desc + action + "'"
}

// zshEscape makes s safe inside single quotes and _arguments brackets.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	cw := &completionWriter{w: w}

	cw.line("# fish completion for mdpdf")
	cw.line("complete -c mdpdf -f")
	for _, c := range cmds {
		cw.line("complete -c mdpdf -n '__fish_use_subcommand' -a %s -d '%s'", c.Name, fishEscape(c.Desc))
	}
	for _, c := range cmds {
		if len(c.Args) > 0 {
			cw.line("complete -c mdpdf -n '__fish_seen_subcommand_from %s' -a '%s'", c.Name, strings.Join(c.Args, " "))
		}
		for _, f := range c.Flags {
			line := "complete -c mdpdf -l " + f.Long
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += " -x -a '" + strings.Join(f.Values, " ") + "'"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagFile:
				line += " -r -F"
			case flagString, flagFloat:
				line += " -x"
			}
			cw.line("%s -d '%s'", line, fishEscape(f.Desc))
		}
	}
	cw.line("complete -c mdpdf -n 'not __fish_seen_subcommand_from version help completion' -a '(__fish_complete_directories)'")
	return cw.err
}

// fishEscape makes s safe inside single quotes.
func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
