package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"goqa/config"
	"goqa/engine"
	"goqa/fileContents"
	"goqa/server"
	"goqa/slog"
	"goqa/tokenizer"
)

const prompt = "Query: "

var errUsage = errors.New("usage error")

type options struct {
	configPath string
	query      string
	serve      bool
	saveCorpus string
	help       bool
	cfg        *config.Config
	corpus     string
}

func usage(program string, flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: %s [FLAGS] <CORPUS>\n", program)
	fmt.Fprintln(os.Stderr, "    CORPUS is a directory of text files or a SQLite .db with a documents(name, content) table.")
	fmt.Fprintln(os.Stderr)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// parseArgs merges the defaults, the optional config file and the flags, in
// that order of precedence.
func parseArgs(program string, args []string) (*options, *pflag.FlagSet, error) {
	opts := &options{}
	flagSet := pflag.NewFlagSet(program, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	defaults := config.Default()
	flagSet.StringVar(&opts.configPath, "config", "", "YAML or JSONC config file")
	fileMatches := flagSet.IntP("files", "f", defaults.FileMatches, "number of files kept after the document pass")
	sentenceMatches := flagSet.IntP("sentences", "s", defaults.SentenceMatches, "number of sentences answered")
	flagSet.StringVarP(&opts.query, "query", "q", "", "answer this query and exit instead of prompting")
	flagSet.BoolVar(&opts.serve, "serve", false, "serve POST /api/ask over HTTP instead of prompting")
	addr := flagSet.String("addr", defaults.Addr, "address to serve on with --serve")
	flagSet.StringVar(&opts.saveCorpus, "save-corpus", "", "store the loaded corpus in this SQLite database")
	logLevel := flagSet.String("log-level", defaults.LogLevel, "debug, info, warn or error")
	logFormat := flagSet.String("log-format", defaults.LogFormat, "auto, text or json")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		return nil, flagSet, err
	}
	if opts.help {
		return opts, flagSet, nil
	}
	if flagSet.NArg() != 1 {
		return nil, flagSet, fmt.Errorf("expected exactly one corpus argument, got %d", flagSet.NArg())
	}
	opts.corpus = flagSet.Arg(0)

	opts.cfg = defaults
	if opts.configPath != "" {
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return nil, flagSet, err
		}
		opts.cfg = cfg
	}
	if flagSet.Changed("files") {
		opts.cfg.FileMatches = *fileMatches
	}
	if flagSet.Changed("sentences") {
		opts.cfg.SentenceMatches = *sentenceMatches
	}
	if flagSet.Changed("addr") {
		opts.cfg.Addr = *addr
	}
	if flagSet.Changed("log-level") {
		opts.cfg.LogLevel = *logLevel
	}
	if flagSet.Changed("log-format") {
		opts.cfg.LogFormat = *logFormat
	}
	if err := opts.cfg.Validate(); err != nil {
		return nil, flagSet, err
	}
	return opts, flagSet, nil
}

func printAnswer(out io.Writer, eng *engine.Engine, query string, cfg *config.Config) error {
	answer, err := eng.Answer(query, cfg.FileMatches, cfg.SentenceMatches)
	if err != nil {
		return err
	}
	for _, sentence := range answer.Texts() {
		fmt.Fprintln(out, sentence)
	}
	return nil
}

// ask answers every line of in until EOF, whatever the line length. The
// prompt is only written when in is interactive. A query that cannot be
// answered is logged and the loop goes on.
func ask(in io.Reader, out io.Writer, interactive bool, eng *engine.Engine, cfg *config.Config) error {
	reader := bufio.NewReader(in)
	for {
		if interactive {
			fmt.Fprint(out, prompt)
		}
		line, err := reader.ReadString('\n')
		if query := strings.TrimSpace(line); query != "" {
			if answerErr := printAnswer(out, eng, query, cfg); answerErr != nil {
				slog.Errorf("Could not answer the query: %s", answerErr)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("ask: cannot read the query: %w", err)
		}
	}
	if interactive {
		fmt.Fprintln(out)
	}
	return nil
}

func run(program string, args []string) error {
	opts, flagSet, err := parseArgs(program, args)
	if errors.Is(err, pflag.ErrHelp) || (err == nil && opts.help) {
		usage(program, flagSet)
		return nil
	}
	if err != nil {
		usage(program, flagSet)
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	cfg := opts.cfg
	if err := slog.Configure(cfg.LogLevel, cfg.LogFormat, os.Stderr); err != nil {
		return err
	}

	slog.Infof("Reading corpus `%s`...", opts.corpus)
	corpus, err := fileContents.Load(opts.corpus)
	if err != nil {
		return err
	}
	slog.Infof("Read %d documents (%s)", len(corpus), humanize.Bytes(fileContents.Size(corpus)))
	if opts.saveCorpus != "" {
		if err := fileContents.ToSQLite(opts.saveCorpus, corpus); err != nil {
			return err
		}
		slog.Info("Corpus saved to ", opts.saveCorpus)
	}

	eng, err := engine.New(corpus, engine.WithTokenizer(tokenizer.NewEnglish(cfg.Stopwords...)))
	if err != nil {
		return err
	}

	switch {
	case opts.serve:
		gin.SetMode(gin.ReleaseMode)
		return server.New(eng, cfg.FileMatches, cfg.SentenceMatches).ListenAndServe(cfg.Addr)
	case opts.query != "":
		return printAnswer(os.Stdout, eng, opts.query, cfg)
	default:
		return ask(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())), eng, cfg)
	}
}

func main() {
	if len(os.Args) == 0 {
		slog.Fatalf("This is unexpected, os.Args `%+v` is empty!", os.Args)
	}
	if err := run(os.Args[0], os.Args[1:]); err != nil {
		slog.Fatal(err)
	}
}
