package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/pageforge"
	"github.com/aretw0/pageforge/internal/logging"
	"github.com/aretw0/pageforge/internal/presentation/tui"
	"github.com/aretw0/pageforge/pkg/editor"
)

// REPLOptions configures an interactive editing loop.
type REPLOptions struct {
	Engine    *pageforge.Engine
	SessionID string
	In        io.Reader
	Out       io.Writer

	// Interactive prints the banner and a prompt before each line.
	Interactive bool
	// Render turns the markdown outline into terminal output. Nil prints raw markdown.
	Render func(string) (string, error)
	Logger *slog.Logger
}

// maxScanSize lets oversized lines reach sanitizeLine instead of aborting the scan.
const maxScanSize = 1 << 20

// ErrQuit is returned by ParseLine for quit, exit and q.
var ErrQuit = errors.New("quit")

// RunREPL reads one command per line until EOF, quit, or ctx is cancelled.
// Lines are JSON objects or the shorthand `op key=value style.color=red`.
func RunREPL(ctx context.Context, opts REPLOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.Interactive {
		tui.PrintBanner(opts.Out, pageforge.Version)
		printSystemMessage(opts.Out, "Editing session '%s'. Type 'help' for commands.", opts.SessionID)
	}

	// Make sure the session exists so `show` works on an empty start.
	if _, err := opts.Engine.Do(ctx, opts.SessionID, func(context.Context, *editor.Session) error { return nil }); err != nil {
		return err
	}

	limit := maxLineSize()
	scanner := bufio.NewScanner(opts.In)
	scanner.Buffer(make([]byte, 0, 64*1024), max(limit+1, maxScanSize))
	for {
		if opts.Interactive {
			fmt.Fprint(opts.Out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line, err := sanitizeLine(scanner.Text(), limit)
		if err != nil {
			fmt.Fprintln(opts.Out, tui.Status(false, err.Error()))
			continue
		}
		switch line = strings.TrimSpace(line); line {
		case "":
			continue
		case "help":
			printHelp(opts.Out)
			continue
		case "show":
			if err := show(ctx, opts); err != nil {
				fmt.Fprintln(opts.Out, tui.Status(false, err.Error()))
			}
			continue
		}

		cmd, err := ParseLine(line)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(opts.Out, tui.Status(false, err.Error()))
			continue
		}

		res, _, err := opts.Engine.Execute(ctx, opts.SessionID, cmd)
		if err != nil {
			logger.Debug("command rejected", "op", cmd.Op, "error", err)
			fmt.Fprintln(opts.Out, tui.Status(false, err.Error()))
			continue
		}
		fmt.Fprintln(opts.Out, tui.Status(true, describe(cmd.Op, res)))
	}
}

func describe(op string, res editor.Result) string {
	if !res.Changed {
		return op + ": nothing to do"
	}
	var b strings.Builder
	b.WriteString(op)
	if res.NodeID != "" {
		fmt.Fprintf(&b, " node=%s", res.NodeID)
	}
	if res.PageID != "" {
		fmt.Fprintf(&b, " page=%s", res.PageID)
	}
	if res.Synchronized {
		b.WriteString(" (header/footer synced)")
	}
	return b.String()
}

func show(ctx context.Context, opts REPLOptions) error {
	site, err := opts.Engine.Load(ctx, opts.SessionID)
	if err != nil {
		return err
	}
	out := tui.Outline(site)
	if opts.Render != nil {
		if rendered, err := opts.Render(out); err == nil {
			out = rendered
		}
	}
	fmt.Fprint(opts.Out, out)
	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Commands: show, help, quit")
	fmt.Fprintln(w, "Operations: "+strings.Join(editor.Operations, ", "))
	fmt.Fprintln(w, `Example: add_node kind=Heading1 content="Hello world" style.color=#111`)
}

// ParseLine turns a REPL line into a Command.
func ParseLine(line string) (editor.Command, error) {
	line = strings.TrimSpace(line)
	switch line {
	case "quit", "exit", "q":
		return editor.Command{}, ErrQuit
	}
	if strings.HasPrefix(line, "{") {
		var raw map[string]any
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return editor.Command{}, fmt.Errorf("invalid JSON command: %w", err)
		}
		return editor.DecodeCommand(raw)
	}

	tokens, err := tokenize(line)
	if err != nil {
		return editor.Command{}, err
	}
	raw := map[string]any{"op": tokens[0]}
	for _, tok := range tokens[1:] {
		key, value, ok := strings.Cut(tok, "=")
		if !ok || key == "" {
			return editor.Command{}, fmt.Errorf("expected key=value, got %q", tok)
		}
		if group, field, nested := strings.Cut(key, "."); nested {
			if group != "style" && group != "attributes" {
				return editor.Command{}, fmt.Errorf("unknown group %q", group)
			}
			m, _ := raw[group].(map[string]any)
			if m == nil {
				m = map[string]any{}
				raw[group] = m
			}
			m[field] = value
			continue
		}
		raw[key] = value
	}
	return editor.DecodeCommand(raw)
}

// tokenize splits on whitespace, honouring single and double quotes.
// Backslash escapes the next rune inside double quotes.
func tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		quote   rune
		escaped bool
		inToken bool
	)
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case quote == '"' && r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 || escaped {
		return nil, errors.New("unterminated quote")
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	if len(tokens) == 0 {
		return nil, errors.New("empty command")
	}
	return tokens, nil
}
