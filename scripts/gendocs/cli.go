package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lathaniel/alfa/internal/cli"
	"github.com/lathaniel/alfa/internal/cli/config"
)

// generateCLIDocs writes index.md plus one page per command into outDir.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	pages := map[string][]byte{"index.md": renderCLIIndex(root)}
	for _, cmd := range documentedCommands(root) {
		pages[cmd.Name()+".md"] = renderCommandPage(cmd)
	}

	names := make([]string, 0, len(pages))
	for name := range pages {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := os.WriteFile(filepath.Join(outDir, name), pages[name], 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

// documentedCommands returns the visible subcommands of root.
func documentedCommands(root *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || strings.HasPrefix(cmd.Name(), "__") {
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func renderCLIIndex(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for alfa")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(root.Long)

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/lathaniel/alfa/cmd/alfa@latest")

	w.Header(2, "Usage")
	w.CodeBlock("bash", "alfa <command> [arguments] [options]")

	cmds := documentedCommands(root)
	for _, group := range root.Groups() {
		writeCommandSection(w, strings.TrimSuffix(group.Title, ":"), cmds, group.ID)
	}
	writeCommandSection(w, "Other Commands", cmds, "")

	w.Header(2, "Global Options")
	w.Paragraph("Every command accepts these flags:")
	writeFlagsTable(w, root.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph("Each configuration key can be set through an `ALFA_` variable. " +
		"Flags override variables, which override the config file.")
	var envRows [][]string
	for _, key := range configKeys() {
		if strings.HasPrefix(key, "conventions.") {
			continue
		}
		envRows = append(envRows, []string{InlineCode(envVar(key)), configDescriptions[key]})
	}
	envRows = append(envRows,
		[]string{InlineCode(envVar("output")), "Output format"},
		[]string{InlineCode(envVar("verbose")), "Verbose output"},
		[]string{InlineCode(config.EnvPrefix + "CONVENTIONS_*"), "Naming conventions, see the configuration reference"},
	)
	w.Table([]string{"Variable", "Description"}, envRows)

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Any error, printed on stderr. `alfa locked --quiet` also exits 1 when the model is locked."},
	})

	return w.Bytes()
}

// writeCommandSection lists the commands of one help group.
func writeCommandSection(w *MarkdownWriter, title string, cmds []*cobra.Command, groupID string) {
	var rows [][]string
	for _, cmd := range cmds {
		if cmd.GroupID != groupID {
			continue
		}
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, InlineCode(useLine(cmd)), cleanDescription(cmd.Short)})
	}
	if len(rows) == 0 {
		return
	}
	w.Header(2, title)
	w.Table([]string{"Command", "Usage", "Description"}, rows)
}

func renderCommandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	w.CodeBlock("bash", useLine(cmd))

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		aliases := make([]string, len(cmd.Aliases))
		for i, alias := range cmd.Aliases {
			aliases[i] = InlineCode(alias)
		}
		w.BulletList(aliases)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	if related := siblings(cmd); len(related) > 0 {
		w.Header(2, "See Also")
		w.BulletList(related)
	}

	w.Paragraph("Global options are listed in the [CLI reference](/cli/).")
	return w.Bytes()
}

// useLine returns the usage line without the trailing [flags].
func useLine(cmd *cobra.Command) string {
	line := strings.TrimSuffix(cmd.UseLine(), " [flags]")
	if !strings.HasPrefix(line, "alfa") {
		line = "alfa " + line
	}
	return line
}

// siblings links the other commands of cmd's help group.
func siblings(cmd *cobra.Command) []string {
	if cmd.GroupID == "" || !cmd.HasParent() {
		return nil
	}
	var links []string
	for _, other := range documentedCommands(cmd.Parent()) {
		if other != cmd && other.GroupID == cmd.GroupID {
			links = append(links, fmt.Sprintf("[%s](/cli/%s): %s", InlineCode(other.Name()), other.Name(), cleanDescription(other.Short)))
		}
	}
	return links
}

// writeFlagsTable writes one row per visible flag.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		name := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			name += ", " + InlineCode("-"+f.Shorthand)
		}

		def := f.DefValue
		switch {
		case def == "", def == "[]":
			def = ""
		case f.Value.Type() == "bool":
		default:
			def = InlineCode(def)
		}

		rows = append(rows, []string{name, f.Value.Type(), def, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Flag", "Type", "Default", "Description"}, rows)
}

// cleanExample strips the indentation shared by every non-blank line.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	indent := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); indent == -1 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
