package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/dotsetgreg/personastudio/pkg/chat"
	"github.com/dotsetgreg/personastudio/pkg/config"
	"github.com/dotsetgreg/personastudio/pkg/persona"
)

func executeCLI() error {
	return buildRootCommand().Execute()
}

func buildRootCommand() *cobra.Command {
	var (
		showVersion bool
		configPath  string
	)

	root := &cobra.Command{
		Use:   "personastudio",
		Short: "AI-assisted persona authoring studio",
		Long: strings.TrimSpace(`personastudio builds and maintains character personas with AI assistance.

Structured fields and a free-form summary stay in sync through the gateway:
edit fields and the summary regenerates, rewrite the summary and the fields
follow. Saved personas carry a bounded version history you can revert to.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				printVersion()
				return nil
			}
			_ = cmd.Help()
			return fmt.Errorf("a subcommand is required")
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "Show build/version metadata")
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Config file path")

	getConfigPath := func() string { return configPath }

	root.AddCommand(newOnboardCommand(getConfigPath))
	root.AddCommand(newListCommand(getConfigPath))
	root.AddCommand(newShowCommand(getConfigPath))
	root.AddCommand(newCreateCommand(getConfigPath))
	root.AddCommand(newEditCommand(getConfigPath))
	root.AddCommand(newDeleteCommand(getConfigPath))
	root.AddCommand(newSummarizeCommand(getConfigPath))
	root.AddCommand(newSyncCommand(getConfigPath))
	root.AddCommand(newResearchCommand(getConfigPath))
	root.AddCommand(newAnalyzeCommand(getConfigPath))
	root.AddCommand(newHistoryCommand(getConfigPath))
	root.AddCommand(newRevertCommand(getConfigPath))
	root.AddCommand(newExportCommand(getConfigPath))
	root.AddCommand(newImportCommand(getConfigPath))
	root.AddCommand(newChatCommand(getConfigPath))
	root.AddCommand(newRefineCommand(getConfigPath))
	root.AddCommand(newVersionCommand())

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Show build/version metadata",
		Example: "  personastudio version",
		RunE: func(cmd *cobra.Command, args []string) error {
			printVersion()
			return nil
		},
	}
}

func newOnboardCommand(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:     "onboard",
		Short:   "Initialize ~/.personastudio configuration",
		Example: "  personastudio onboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath()
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", path)
			}
			if err := config.SaveConfig(path, config.DefaultConfig()); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Printf("%s is ready!\n", appName)
			fmt.Println("\nNext steps:")
			fmt.Println("  1. Add your API key to", path)
			fmt.Println("     Get one at: https://openrouter.ai/keys")
			fmt.Println("  2. Create a persona: personastudio create --name \"Ada\" --role \"mentor\"")
			fmt.Println("  3. Chat with it: personastudio chat Ada")
			return nil
		},
	}
}

func newListCommand(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List saved personas",
		Example: "  personastudio list",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStudio(configPath())
			if err != nil {
				return err
			}
			defer st.close()

			personas := st.store.List()
			if len(personas) == 0 {
				fmt.Println("No personas saved.")
				return nil
			}
			fmt.Printf("Personas (%d):\n", len(personas))
			for _, p := range personas {
				line := fmt.Sprintf("  %s (%s)", p.Name, p.ID)
				if p.ShortSummary != "" {
					line += " - " + p.ShortSummary
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newShowCommand(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:     "show <persona>",
		Short:   "Show a persona's full state",
		Args:    cobra.ExactArgs(1),
		Example: "  personastudio show Ada",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStudio(configPath())
			if err != nil {
				return err
			}
			defer st.close()

			p, err := resolvePersona(st, args[0])
			if err != nil {
				return err
			}
			printPersona(p)
			return nil
		},
	}
}

func newCreateCommand(configPath func() string) *cobra.Command {
	var (
		params    paramFlags
		summarize bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a persona from structured fields",
		Example: strings.Join([]string{
			"  personastudio create --name \"Ada\" --role \"research mentor\" --tone \"warm, precise\"",
			"  personastudio create --name \"Ada\" --role mentor --summarize",
		}, "\n"),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStudio(configPath())
			if err != nil {
				return err
			}
			defer st.close()
			ctx := cmd.Context()

			var state persona.State
			state.ApplyParams(params.toParams())
			if summarize {
				st.editor.Open(state)
				if err := st.editor.RefreshSummary(ctx); err != nil {
					return err
				}
				state = st.editor.State()
			}

			p, err := st.store.Save(ctx, "", state)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	params.register(cmd)
	cmd.Flags().BoolVar(&summarize, "summarize", false, "Generate the summary before saving")
	return cmd
}

func newEditCommand(configPath func() string) *cobra.Command {
	var (
		params    paramFlags
		summarize bool
	)

	cmd := &cobra.Command{
		Use:     "edit <persona>",
		Short:   "Update a persona's structured fields",
		Args:    cobra.ExactArgs(1),
		Example: "  personastudio edit Ada --tone \"dry, playful\" --summarize",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStudio(configPath())
			if err != nil {
				return err
			}
			defer st.close()
			ctx := cmd.Context()

			p, err := resolvePersona(st, args[0])
			if err != nil {
				return err
			}

			st.editor.Open(p.State)
			st.editor.EditParams(mergeFlagParams(p.State.Params(), params))
			if summarize {
				if err := st.editor.RefreshSummary(ctx); err != nil {
					return err
				}
			}

			updated, err := st.store.Save(ctx, p.ID, st.editor.State())
			if err != nil {
				return err
			}
			fmt.Printf("Updated %s (%s)\n", updated.Name, updated.ID)
			return nil
		},
	}
	params.register(cmd)
	cmd.Flags().BoolVar(&summarize, "summarize", false, "Regenerate the summary before saving")
	return cmd
}

func newDeleteCommand(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <persona>",
		Aliases: []string{"rm"},
		Short:   "Delete a persona and its history",
		Args:    cobra.ExactArgs(1),
		Example: "  personastudio delete Ada",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStudio(configPath())
			if err != nil {
				return err
			}
			defer st.close()

			p, err := resolvePersona(st, args[0])
			if err != nil {
				return err
			}
			if err := st.store.Delete(cmd.Context(), p.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
}

func newSummarizeCommand(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:     "summarize <persona>",
		Short:   "Regenerate the summary from the structured fields",
		Args:    cobra.ExactArgs(1),
		Example: "  personastudio summarize Ada",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStudio(configPath())
			if err != nil {
				return err
			}
			defer st.close()
			ctx := cmd.Context()

			p, err := resolvePersona(st, args[0])
			if err != nil {
				return err
			}
			st.editor.Open(p.State)
			if err := st.editor.RefreshSummary(ctx); err != nil {
				return err
			}
			updated, err := st.store.Save(ctx, p.ID, st.editor.State())
			if err != nil {
				return err
			}
			fmt.Println(updated.Summary)
			return nil
		},
	}
}

func newSyncCommand(configPath func() string) *cobra.Command {
	var (
		summary string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "sync <persona>",
		Short: "Rewrite the summary and sync the structured fields from it",
		Long: strings.TrimSpace(`Replace the persona's summary text and extract structured fields from it.
Extracted non-empty fields overwrite; fields the text says nothing about keep
their current values.`),
		Args:    cobra.ExactArgs(1),
		Example: "  personastudio sync Ada --file ada-summary.txt",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textFromFlagOrFile(summary, file)
			if err != nil {
				return err
			}

			st, err := openStudio(configPath())
			if err != nil {
				return err
			}
			defer st.close()
			ctx := cmd.Context()

			p, err := resolvePersona(st, args[0])
			if err != nil {
				return err
			}
			st.editor.Open(p.State)
			st.editor.EditSummary(text)
			if err := st.editor.SyncFromSummary(ctx); err != nil {
				return err
			}
			updated, err := st.store.Save(ctx, p.ID, st.editor.State())
			if err != nil {
				return err
			}
			fmt.Printf("Synced %s (%s)\n", updated.Name, updated.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&summary, "summary", "", "Summary text")
	cmd.Flags().StringVar(&file, "file", "", "Read summary text from file")
	return cmd
}

func newResearchCommand(configPath func() string) *cobra.Command {
	var topic string

	cmd := &cobra.Command{
		Use:     "research <persona>",
		Short:   "Rebuild the summary from web-search-backed generation",
		Args:    cobra.ExactArgs(1),
		Example: "  personastudio research Ada --topic \"Ada Lovelace\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStudio(configPath())
			if err != nil {
				return err
			}
			defer st.close()
			ctx := cmd.Context()

			p, err := resolvePersona(st, args[0])
			if err != nil {
				return err
			}
			st.editor.Open(p.State)
			if err := st.editor.RegenerateWithSearch(ctx, topic); err != nil {
				return err
			}
			updated, err := st.store.Save(ctx, p.ID, st.editor.State())
			if err != nil {
				return err
			}
			fmt.Println(updated.Summary)
			for _, src := range updated.Sources {
				fmt.Printf("  [source] %s %s\n", src.Title, src.URI)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Research topic")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func newAnalyzeCommand(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:     "analyze <persona>",
		Short:   "Run the MBTI personality analysis",
		Args:    cobra.ExactArgs(1),
		Example: "  personastudio analyze Ada",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStudio(configPath())
			if err != nil {
				return err
			}
			defer st.close()
			ctx := cmd.Context()

			p, err := resolvePersona(st, args[0])
			if err != nil {
				return err
			}
			st.editor.Open(p.State)
			if err := st.editor.AnalyzePersonality(ctx); err != nil {
				return err
			}
			updated, err := st.store.Save(ctx, p.ID, st.editor.State())
			if err != nil {
				return err
			}
			printMBTI(updated.MBTI)
			return nil
		},
	}
}

func newHistoryCommand(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:     "history <persona>",
		Short:   "List the persona's saved versions, newest first",
		Args:    cobra.ExactArgs(1),
		Example: "  personastudio history Ada",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStudio(configPath())
			if err != nil {
				return err
			}
			defer st.close()

			p, err := resolvePersona(st, args[0])
			if err != nil {
				return err
			}
			if len(p.History) == 0 {
				fmt.Println("No history yet.")
				return nil
			}
			for i, entry := range p.History {
				when := time.UnixMilli(entry.CreatedAtMS).Format("2006-01-02 15:04")
				fmt.Printf("  %d. %s - %s\n", i+1, when, entry.ChangeSummary)
			}
			return nil
		},
	}
}

func newRevertCommand(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:     "revert <persona> <entry>",
		Short:   "Restore a version from the history",
		Long:    "Restore the snapshot at the given history position (1 = most recent). The revert itself is recorded as a new history entry.",
		Args:    cobra.ExactArgs(2),
		Example: "  personastudio revert Ada 1",
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil || index < 1 {
				return fmt.Errorf("entry must be a positive history position")
			}

			st, err := openStudio(configPath())
			if err != nil {
				return err
			}
			defer st.close()
			ctx := cmd.Context()

			p, err := resolvePersona(st, args[0])
			if err != nil {
				return err
			}
			if index > len(p.History) {
				return fmt.Errorf("persona has %d history entries", len(p.History))
			}
			entry := p.History[index-1]

			st.editor.Open(p.State)
			st.editor.RevertTo(entry)

			updated, err := st.store.Save(ctx, p.ID, st.editor.State())
			if err != nil {
				return err
			}
			fmt.Printf("Reverted %s to version from %s\n",
				updated.Name, time.UnixMilli(entry.CreatedAtMS).Format("2006-01-02 15:04"))
			return nil
		},
	}
}

func newExportCommand(configPath func() string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "export <persona>",
		Short:   "Export a persona as shareable JSON",
		Args:    cobra.ExactArgs(1),
		Example: "  personastudio export Ada -o ada.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStudio(configPath())
			if err != nil {
				return err
			}
			defer st.close()

			p, err := resolvePersona(st, args[0])
			if err != nil {
				return err
			}
			data, err := persona.Export(p)
			if err != nil {
				return fmt.Errorf("export persona: %w", err)
			}
			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, append(data, '\n'), 0644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Printf("Exported %s to %s\n", p.Name, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func newImportCommand(configPath func() string) *cobra.Command {
	var document bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a persona from an export file or a reference document",
		Long: strings.TrimSpace(`Import an exported persona JSON file as a new persona. With --document the
file is treated as free text instead and structured fields are extracted
from it by the gateway.`),
		Args: cobra.ExactArgs(1),
		Example: strings.Join([]string{
			"  personastudio import ada.json",
			"  personastudio import --document ada-bio.txt",
		}, "\n"),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			st, err := openStudio(configPath())
			if err != nil {
				return err
			}
			defer st.close()
			ctx := cmd.Context()

			var p persona.Persona
			if document {
				st.editor.Open(persona.State{})
				if err := st.editor.ImportDocument(ctx, string(raw)); err != nil {
					return err
				}
				p, err = st.store.Save(ctx, "", st.editor.State())
				if err != nil {
					return err
				}
			} else {
				record, err := persona.Import(raw)
				if err != nil {
					return fmt.Errorf("parse %s: %w", filepath.Base(args[0]), err)
				}
				p, err = st.store.Ingest(ctx, record)
				if err != nil {
					return err
				}
			}
			fmt.Printf("Imported %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&document, "document", false, "Treat the file as free text and extract fields")
	return cmd
}

func newChatCommand(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:     "chat <persona>",
		Short:   "Chat with a persona in character",
		Args:    cobra.ExactArgs(1),
		Example: "  personastudio chat Ada",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStudio(configPath())
			if err != nil {
				return err
			}
			defer st.close()

			p, err := resolvePersona(st, args[0])
			if err != nil {
				return err
			}
			session := chat.NewSession(st.gw, p.State)
			fmt.Printf("Chatting with %s (/reset clears, /quit exits)\n\n", p.Name)

			return runREPL("You: ", func(input string) (bool, error) {
				switch input {
				case "/quit", "/exit":
					return true, nil
				case "/reset":
					session.Reset()
					fmt.Println("Transcript cleared.")
					return false, nil
				}
				reply, err := session.Send(cmd.Context(), input)
				if err != nil {
					fmt.Printf("Error: %v\n", err)
					return false, nil
				}
				fmt.Printf("\n%s: %s\n\n", p.Name, reply)
				return false, nil
			})
		},
	}
}

func newRefineCommand(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "refine [persona]",
		Short: "Build or refine a persona through conversation",
		Long: strings.TrimSpace(`Run a guided dialogue that fills the persona's structured fields turn by
turn. Without an argument a new persona is built from scratch. /done saves
and exits, /quit discards.`),
		Args:    cobra.MaximumNArgs(1),
		Example: "  personastudio refine Ada",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStudio(configPath())
			if err != nil {
				return err
			}
			defer st.close()
			ctx := cmd.Context()

			var (
				existing persona.Persona
				state    persona.State
				haveID   bool
			)
			if len(args) == 1 {
				existing, err = resolvePersona(st, args[0])
				if err != nil {
					return err
				}
				state = existing.State
				haveID = true
			}

			session := chat.NewRefineSession(st.gw, state.Params())
			fmt.Println("Describe the persona you want (/done saves, /quit discards)")

			err = runREPL("You: ", func(input string) (bool, error) {
				switch input {
				case "/quit":
					haveID = false
					state = persona.State{}
					return true, nil
				case "/done":
					return true, nil
				}
				reply, params, err := session.Send(ctx, input)
				if err != nil {
					fmt.Printf("Error: %v\n", err)
					return false, nil
				}
				state.ApplyParams(params)
				fmt.Printf("\n%s\n\n", reply)
				return false, nil
			})
			if err != nil {
				return err
			}
			if !state.HasContent() {
				fmt.Println("Nothing to save.")
				return nil
			}

			id := ""
			if haveID {
				id = existing.ID
			}
			p, err := st.store.Save(ctx, id, state)
			if err != nil {
				return err
			}
			fmt.Printf("Saved %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
}

// runREPL reads lines until the handler asks to stop or input ends.
func runREPL(prompt string, handle func(input string) (done bool, err error)) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     filepath.Join(os.TempDir(), ".personastudio_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return err
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		done, err := handle(input)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

type paramFlags struct {
	name        string
	role        string
	tone        string
	personality string
	worldview   string
	experience  string
	other       string
}

func (f *paramFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Persona name")
	cmd.Flags().StringVar(&f.role, "role", "", "Role or occupation")
	cmd.Flags().StringVar(&f.tone, "tone", "", "Speaking tone")
	cmd.Flags().StringVar(&f.personality, "personality", "", "Personality traits")
	cmd.Flags().StringVar(&f.worldview, "worldview", "", "Worldview and values")
	cmd.Flags().StringVar(&f.experience, "experience", "", "Background and experience")
	cmd.Flags().StringVar(&f.other, "other", "", "Anything that fits no other field")
}

func (f *paramFlags) toParams() persona.Params {
	return persona.Params{
		Name:        f.name,
		Role:        f.role,
		Tone:        f.tone,
		Personality: f.personality,
		Worldview:   f.worldview,
		Experience:  f.experience,
		Other:       f.other,
	}
}

// mergeFlagParams overlays only the flags the user actually set.
func mergeFlagParams(current persona.Params, f paramFlags) persona.Params {
	pick := func(prev, next string) string {
		if next != "" {
			return next
		}
		return prev
	}
	return persona.Params{
		Name:        pick(current.Name, f.name),
		Role:        pick(current.Role, f.role),
		Tone:        pick(current.Tone, f.tone),
		Personality: pick(current.Personality, f.personality),
		Worldview:   pick(current.Worldview, f.worldview),
		Experience:  pick(current.Experience, f.experience),
		Other:       pick(current.Other, f.other),
	}
}

func textFromFlagOrFile(text, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("provide --summary or --file")
	}
	return strings.TrimSpace(text), nil
}

func resolvePersona(st *studio, ref string) (persona.Persona, error) {
	if p, err := st.store.Get(ref); err == nil {
		return p, nil
	}
	var matches []persona.Persona
	for _, p := range st.store.List() {
		if strings.EqualFold(p.Name, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return persona.Persona{}, fmt.Errorf("no persona matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return persona.Persona{}, fmt.Errorf("%d personas named %q, use the id", len(matches), ref)
	}
}

func printPersona(p persona.Persona) {
	fmt.Printf("%s (%s)\n", p.Name, p.ID)
	printField := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		fmt.Printf("  %-12s %s\n", label+":", value)
	}
	printField("Role", p.Role)
	printField("Tone", p.Tone)
	printField("Personality", p.Personality)
	printField("Worldview", p.Worldview)
	printField("Experience", p.Experience)
	printField("Other", p.Other)
	printField("Short", p.ShortSummary)
	if p.Summary != "" {
		fmt.Printf("\n%s\n", p.Summary)
	}
	if len(p.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range p.Sources {
			fmt.Printf("  - %s %s\n", src.Title, src.URI)
		}
	}
	if p.MBTI != nil {
		fmt.Println()
		printMBTI(p.MBTI)
	}
	if n := len(p.History); n > 0 {
		fmt.Printf("\nHistory: %d version(s), see 'personastudio history'\n", n)
	}
}

func printMBTI(profile *persona.MBTIProfile) {
	if profile == nil {
		return
	}
	fmt.Printf("MBTI: %s (%s)\n", profile.Type, profile.TypeName)
	fmt.Printf("  Mind %d  Energy %d  Nature %d  Tactics %d\n",
		profile.Scores.Mind, profile.Scores.Energy, profile.Scores.Nature, profile.Scores.Tactics)
	if profile.Description != "" {
		fmt.Printf("  %s\n", profile.Description)
	}
}
