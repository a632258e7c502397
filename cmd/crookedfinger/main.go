// Command crookedfinger is a terminal client for the Crooked Finger
// crochet assistant. It exercises the SDK end to end: sessions,
// chat, pattern translation, projects, usage dashboards, and the
// attachment cache.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/crookedfinger/crookedfinger-go"
	"github.com/crookedfinger/crookedfinger-go/blobcache"
)

type config struct {
	endpoint     string
	stateFile    string
	cacheDir     string
	timeout      time.Duration
	conversation int
	project      int
	notes        string
	images       string
	verbose      bool
}

func main() {
	cfg, args := parseFlags()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	c, err := buildClient(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	err = run(ctx, c, cfg, args)
	cancel()

	if closeErr := c.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		log.Fatal(err)
	}
}

func parseFlags() (config, []string) {
	cfg := config{}

	flag.StringVar(&cfg.endpoint, "endpoint", envOr("CROOKEDFINGER_ENDPOINT", ""), "GraphQL endpoint URL")
	flag.StringVar(&cfg.stateFile, "state", defaultStateFile(), "session state file")
	flag.StringVar(&cfg.cacheDir, "cache-dir", defaultCacheDir(), "attachment cache directory (empty disables)")
	flag.DurationVar(&cfg.timeout, "timeout", 60*time.Second, "overall command timeout")
	flag.IntVar(&cfg.conversation, "conversation", 0, "conversation id for chat")
	flag.IntVar(&cfg.project, "project", 0, "project id for chat context")
	flag.StringVar(&cfg.notes, "notes", "", "extra context for translate")
	flag.StringVar(&cfg.images, "images", "", "comma-separated image files to attach to chat")
	flag.BoolVar(&cfg.verbose, "v", false, "verbose logging to stderr")
	flag.Usage = usage
	flag.Parse()

	return cfg, flag.Args()
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: crookedfinger [flags] <command> [args]

Commands:
  login EMAIL [PASSWORD]     sign in (password read from stdin if omitted)
  register EMAIL [PASSWORD]  create an account and sign in
  logout                     drop the local session
  chat MESSAGE               send one message to the assistant
  translate FILE|-           translate pattern notation from a file or stdin
  projects                   list saved projects
  conversations              list chat threads
  history ID                 print one conversation's messages
  usage                      show today's model usage
  models                     show the model configuration
  transcript URL             fetch a YouTube video transcript
  prefetch URL...            download attachments into the cache

Flags:
`)
	flag.PrintDefaults()
}

func buildClient(cfg config) (*crookedfinger.Client, error) {
	if cfg.endpoint == "" {
		return nil, fmt.Errorf("no endpoint: set -endpoint or CROOKEDFINGER_ENDPOINT")
	}

	opts := []crookedfinger.Option{
		crookedfinger.WithUserAgent("crookedfinger-cli"),
	}
	if cfg.stateFile != "" {
		opts = append(opts, crookedfinger.WithStateFile(cfg.stateFile))
	}
	if cfg.cacheDir != "" {
		opts = append(opts, crookedfinger.WithAttachmentDir(cfg.cacheDir,
			blobcache.WithCapacity(50),
			blobcache.WithTTL(time.Hour),
		))
	}
	if cfg.verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, crookedfinger.WithLogger(logger))
	}
	return crookedfinger.NewClient(cfg.endpoint, opts...)
}

//nolint:gocyclo // command dispatch is a flat switch
func run(ctx context.Context, c *crookedfinger.Client, cfg config, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return runLogin(ctx, c, rest, false)
	case "register":
		return runLogin(ctx, c, rest, true)
	case "logout":
		return c.Logout()
	case "chat":
		return runChat(ctx, c, cfg, rest)
	case "translate":
		return runTranslate(ctx, c, cfg, rest)
	case "projects":
		return runProjects(ctx, c)
	case "conversations":
		return runConversations(ctx, c)
	case "history":
		return runHistory(ctx, c, rest)
	case "usage":
		return runUsage(ctx, c)
	case "models":
		return runModels(ctx, c)
	case "transcript":
		return runTranscript(ctx, c, rest)
	case "prefetch":
		return runPrefetch(ctx, c, rest)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runLogin(ctx context.Context, c *crookedfinger.Client, args []string, register bool) error {
	if len(args) < 1 {
		return fmt.Errorf("login: EMAIL required")
	}
	email := args[0]
	password := ""
	if len(args) > 1 {
		password = args[1]
	} else {
		fmt.Fprint(os.Stderr, "password: ")
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			password = scanner.Text()
		}
	}

	var (
		sess *crookedfinger.Session
		err  error
	)
	if register {
		sess, err = c.Register(ctx, email, password)
	} else {
		sess, err = c.Login(ctx, email, password)
	}
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (user %d)\n", sess.User.Email, sess.User.ID)
	return nil
}

func runChat(ctx context.Context, c *crookedfinger.Client, cfg config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("chat: MESSAGE required")
	}

	msg := crookedfinger.Message{
		Text:           strings.Join(args, " "),
		ConversationID: cfg.conversation,
		ProjectID:      cfg.project,
	}
	if cfg.images != "" {
		for _, path := range strings.Split(cfg.images, ",") {
			data, err := os.ReadFile(strings.TrimSpace(path))
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			msg.Images = append(msg.Images, data)
		}
	}

	reply, err := c.SendMessage(ctx, msg)
	if err != nil {
		return err
	}
	fmt.Println(reply.Message)
	if reply.HasPattern {
		fmt.Fprintln(os.Stderr, "(reply contains a pattern)")
	}
	return nil
}

func runTranslate(ctx context.Context, c *crookedfinger.Client, cfg config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("translate: FILE or - required")
	}

	var (
		text []byte
		err  error
	)
	if args[0] == "-" {
		text, err = io.ReadAll(os.Stdin)
	} else {
		text, err = os.ReadFile(args[0])
	}
	if err != nil {
		return err
	}

	tr, err := c.TranslatePattern(ctx, string(text), cfg.notes)
	if err != nil {
		return err
	}
	fmt.Println(tr.TranslatedInstructions)
	if tr.Analysis.TotalRounds > 0 {
		fmt.Fprintf(os.Stderr, "rounds=%d type=%s size=%s\n",
			tr.Analysis.TotalRounds, tr.Analysis.PatternType, tr.Analysis.EstimatedSize)
	}
	return nil
}

func runProjects(ctx context.Context, c *crookedfinger.Client) error {
	projects, err := c.API().Projects(ctx)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("no projects")
		return nil
	}
	for _, p := range projects {
		done := " "
		if p.IsCompleted {
			done = "x"
		}
		fmt.Printf("[%s] %4d  %-30s %s\n", done, p.ID, p.Name, p.DifficultyLevel)
	}
	return nil
}

func runConversations(ctx context.Context, c *crookedfinger.Client) error {
	list, err := c.Conversations(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no conversations")
		return nil
	}
	for _, conv := range list {
		fmt.Printf("%4d  %-40s %3d messages  %s\n",
			conv.ID, conv.Title, conv.MessageCount, conv.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runHistory(ctx context.Context, c *crookedfinger.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("history: conversation ID required")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("history: bad conversation id %q", args[0])
	}

	messages, err := c.ChatHistory(ctx, id)
	if err != nil {
		return err
	}
	for _, m := range messages {
		fmt.Printf("you: %s\n", m.Message)
		fmt.Printf("assistant: %s\n\n", m.Response)
	}
	return nil
}

func runUsage(ctx context.Context, c *crookedfinger.Client) error {
	dash, err := c.API().UsageDashboard(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("requests today: %d, remaining: %d\n", dash.TotalRequestsToday, dash.TotalRemaining)
	for _, m := range dash.Models {
		limit := strconv.Itoa(m.DailyLimit)
		if m.DailyLimit == 0 {
			limit = "unlimited"
		}
		fmt.Printf("  %-40s %5d/%-9s p%d %s\n", m.ModelName, m.CurrentUsage, limit, m.Priority, m.UseCase)
	}
	return nil
}

func runModels(ctx context.Context, c *crookedfinger.Client) error {
	mc, err := c.API().ModelConfigInfo(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("provider: %s\nmodel: %s\nopenrouter: %v\n", mc.CurrentProvider, mc.SelectedModel, mc.UseOpenRouter)
	if len(mc.ModelPriorityOrder) > 0 {
		fmt.Printf("priority: %s\n", strings.Join(mc.ModelPriorityOrder, " > "))
	}
	return nil
}

func runTranscript(ctx context.Context, c *crookedfinger.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("transcript: video URL required")
	}
	tr, err := c.API().Transcript(ctx, args[0])
	if err != nil {
		return err
	}
	if !tr.Success {
		return fmt.Errorf("transcript: %s", tr.Error)
	}
	fmt.Fprintf(os.Stderr, "video=%s words=%d lang=%s\n", tr.VideoID, tr.WordCount, tr.Language)
	fmt.Println(tr.Text)
	return nil
}

func runPrefetch(ctx context.Context, c *crookedfinger.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("prefetch: at least one URL required")
	}
	if c.Attachments() == nil {
		return fmt.Errorf("prefetch: attachment cache disabled (set -cache-dir)")
	}

	for _, url := range args {
		handle := c.Attachment(ctx, url)
		if handle == url {
			fmt.Printf("failed  %s\n", url)
			continue
		}
		fmt.Printf("cached  %s -> %s\n", url, handle)
	}

	stats := c.AttachmentStats()
	fmt.Fprintf(os.Stderr, "cache: %d entries, %d total accesses\n", stats.Size, stats.TotalAccessCount)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".crookedfinger", "state")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "crookedfinger", "attachments")
}
