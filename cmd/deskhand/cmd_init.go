package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/shahar-caura/deskhand/internal/config"
	"github.com/shahar-caura/deskhand/internal/provider/llm"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize deskhand.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if in == io.Reader(os.Stdin) {
				fi, err := os.Stdin.Stat()
				if err != nil {
					return fmt.Errorf("checking stdin: %w", err)
				}
				if fi.Mode()&os.ModeCharDevice == 0 {
					return fmt.Errorf("deskhand init requires an interactive terminal")
				}
			}
			return cmdInit(in, cmd.OutOrStdout())
		},
	}
}

// cmdInit runs an interactive wizard to generate deskhand.yaml and, when an
// API key is entered, .deskhand.env.
func cmdInit(in io.Reader, out io.Writer) error {
	const configPath = config.DefaultPath
	p := prompter{scanner: bufio.NewScanner(in), out: out}

	if _, err := os.Stat(configPath); err == nil {
		if !p.yesNo(configPath+" already exists. Overwrite?", false) {
			return fmt.Errorf("aborted")
		}
	}

	fmt.Fprintf(out, "Initializing %s...\n", configPath)

	fmt.Fprintln(out, "\n=== Language model ===")
	data := initData{
		Provider: strings.ToLower(p.str("Provider (gemini/openai/cli/none)", "gemini")),
	}
	switch data.Provider {
	case "gemini", "openai":
		data.KeyVar = "GEMINI_API_KEY"
		defaultModel := llm.DefaultGeminiModel
		if data.Provider == "openai" {
			data.KeyVar = "OPENAI_API_KEY"
			defaultModel = llm.DefaultOpenAIModel
		}
		data.Model = p.str("Model", defaultModel)
		data.APIKey = p.str("API key (stored in "+config.ProjectEnvPath+", blank to use $"+data.KeyVar+")", "")
	case "cli":
	case "none", "":
		data.Provider = ""
	default:
		return fmt.Errorf("unknown provider %q", data.Provider)
	}
	data.LanguageTimeout = p.str("Answer timeout", "60s")
	if _, err := time.ParseDuration(data.LanguageTimeout); err != nil {
		return fmt.Errorf("invalid answer timeout %q: %w", data.LanguageTimeout, err)
	}

	fmt.Fprintln(out, "\n=== Actions ===")
	data.ActionTimeout = p.str("Command timeout", "15s")
	if _, err := time.ParseDuration(data.ActionTimeout); err != nil {
		return fmt.Errorf("invalid command timeout %q: %w", data.ActionTimeout, err)
	}
	data.WordBoundary = p.yesNo("Match keywords as whole words only?", false)
	data.ScreenshotDir = p.str("Screenshot directory", ".")

	fmt.Fprintln(out, "\n=== History ===")
	data.History = p.yesNo("Record handled utterances?", true)

	fmt.Fprintln(out, "\n=== Server ===")
	data.Addr = p.str("Listen address", ":8080")

	tmpl, err := template.New(configPath).Parse(configTemplate)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering template: %w", err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	fmt.Fprintf(out, "\nWrote %s\n", configPath)

	if data.APIKey != "" {
		if err := config.WriteEnvFile(config.ProjectEnvPath, map[string]string{data.KeyVar: data.APIKey}); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", config.ProjectEnvPath)
		fmt.Fprintf(out, "\nTip: add %s to .gitignore to avoid committing secrets.\n", config.ProjectEnvPath)
	}

	return nil
}

type initData struct {
	Provider        string
	Model           string
	APIKey          string
	KeyVar          string
	LanguageTimeout string

	ActionTimeout string
	WordBoundary  bool
	ScreenshotDir string

	History bool
	Addr    string
}

const configTemplate = `# deskhand configuration
# Environment variables are resolved at load time: ${VAR_NAME}

language:
{{- if .Provider}}
  provider: {{.Provider}}
{{- if .Model}}
  model: {{.Model}}
{{- end}}
{{- if .KeyVar}}
  api_key: ${ {{- .KeyVar -}} }
{{- end}}
{{- else}}
  provider: none
  # provider: gemini
  # model: gemini-2.5-pro
  # api_key: ${GEMINI_API_KEY}
{{- end}}
  timeout: {{.LanguageTimeout}}
  # rate_limit: 1    # requests per second
  # burst: 2
  # cache_ttl: 10m

actions:
  timeout: {{.ActionTimeout}}
  word_boundary: {{.WordBoundary}}
  screenshot_dir: "{{.ScreenshotDir}}"
  # Per-platform overrides. Each argv element is a Go template over
  # {{"{{.Percent}}"}}, {{"{{.Query}}"}}, {{"{{.URL}}"}} and {{"{{.Path}}"}}.
  # audio:
  #   set: ["pactl", "set-sink-volume", "@DEFAULT_SINK@", "{{"{{.Percent}}"}}%"]

history:
  enabled: {{.History}}
  dir: .deskhand/history
  retention: 720h

server:
  addr: "{{.Addr}}"
`

// prompter reads wizard answers line by line.
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (p prompter) str(label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, defaultVal)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	p.scanner.Scan()
	input := strings.TrimSpace(p.scanner.Text())
	if input == "" {
		return defaultVal
	}
	return input
}

func (p prompter) yesNo(label string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Fprintf(p.out, "%s %s: ", label, hint)
	p.scanner.Scan()
	input := strings.TrimSpace(strings.ToLower(p.scanner.Text()))
	if input == "" {
		return defaultYes
	}
	return input == "y" || input == "yes"
}
