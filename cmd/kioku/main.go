// Package main is the kioku CLI entry point.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hyperjump/kioku/internal/cli"
	"github.com/hyperjump/kioku/internal/config"
	"github.com/hyperjump/kioku/internal/decay"
	"github.com/hyperjump/kioku/internal/models"
	"github.com/hyperjump/kioku/internal/relevance"
	"github.com/hyperjump/kioku/internal/retrieval"
	"github.com/hyperjump/kioku/internal/similarity"
	"github.com/hyperjump/kioku/pkg/utils"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kioku/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. A missing default config falls back to built-in defaults rather
// than failing, so the CLI works without any setup.
// Returns the config and the path actually loaded ("" for built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); statErr != nil {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "score":
		runScore()
	case "decay":
		runDecay()
	case "rank":
		runRank()
	case "bench":
		runBench()
	case "config":
		runConfig()
	case "version", "--version", "-v":
		fmt.Printf("kioku version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// buildQueryText joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildQueryText(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// argsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument, so "kioku score -memories m.jsonl
// my query -limit 5" would otherwise leave -limit unparsed.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// loadMemories reads one JSON memory record per line and normalizes each.
// Blank lines are skipped.
func loadMemories(path string) ([]*models.Memory, error) {
	f, err := os.Open(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open memories: %w", err)
	}
	defer f.Close()

	var mems []*models.Memory
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var mem models.Memory
		if err := json.Unmarshal([]byte(line), &mem); err != nil {
			return nil, fmt.Errorf("failed to parse memory at line %d: %w", lineNo, err)
		}
		mem.Normalize()
		mems = append(mems, &mem)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read memories: %w", err)
	}
	return mems, nil
}

// saveMemories writes one JSON record per line.
func saveMemories(path string, mems []*models.Memory) error {
	f, err := os.Create(config.ExpandPath(path))
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, mem := range mems {
		if err := enc.Encode(mem); err != nil {
			return fmt.Errorf("failed to write memory %s: %w", mem.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// loadVector reads a query embedding from a file holding a JSON number array.
func loadVector(path string) ([]float64, error) {
	data, err := os.ReadFile(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read vector: %w", err)
	}
	var vec []float64
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, fmt.Errorf("failed to parse vector: %w", err)
	}
	return vec, nil
}

// readDocLines returns the non-blank lines of the file at path, one document
// per line.
func readDocLines(path string) ([]string, error) {
	f, err := os.Open(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open documents: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}
	return lines, nil
}

func outputFormat(jsonFlag bool) cli.OutputFormat {
	if jsonFlag {
		return cli.OutputJSON
	}
	return cli.OutputText
}

func newLogger(cfg *config.Config) *zap.Logger {
	logger, err := utils.NewLogger(cfg.Logging.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func runScore() {
	args := argsReorder(os.Args[2:])
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	memoriesPath := fs.String("memories", "", "memories file (one JSON record per line)")
	vectorPath := fs.String("vector", "", "query embedding file (JSON number array); omit for keyword-only scoring")
	limit := fs.Int("limit", 0, "number of results (default from config)")
	jsonOut := fs.Bool("json", false, "output JSON instead of text")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: kioku score -memories FILE [flags] <query>\n\n")
		fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces.\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	queryText := buildQueryText(fs.Args())
	if *memoriesPath == "" || queryText == "" {
		fs.Usage()
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	defer logger.Sync()

	mems, err := loadMemories(*memoriesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load memories: %v\n", err)
		os.Exit(1)
	}

	query := &models.Query{Text: queryText, Limit: *limit}
	if query.Limit == 0 {
		query.Limit = cfg.Scoring.DefaultLimit
	}
	if *vectorPath != "" {
		vec, err := loadVector(*vectorPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load vector: %v\n", err)
			os.Exit(1)
		}
		query.Vector = vec
	}

	scorer := retrieval.NewScorer(cfg, logger)
	response, err := scorer.Score(query, mems, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scoring failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteScoreResults(os.Stdout, response, outputFormat(*jsonOut)); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runDecay() {
	fs := flag.NewFlagSet("decay", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	memoriesPath := fs.String("memories", "", "memories file (one JSON record per line)")
	outPath := fs.String("out", "", "write updated records here (omit for a dry run)")
	cascade := fs.Bool("cascade", false, "cascade trace strength from fast toward slow")
	deepSleep := fs.Bool("deep-sleep", false, "with -cascade, also move mid-trace strength to slow")
	jsonOut := fs.Bool("json", false, "output JSON instead of text")
	_ = fs.Parse(os.Args[2:])

	if *memoriesPath == "" {
		fmt.Println("Usage: kioku decay -memories FILE [flags]")
		fs.PrintDefaults()
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	defer logger.Sync()

	mems, err := loadMemories(*memoriesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load memories: %v\n", err)
		os.Exit(1)
	}

	report := retrieval.DecayAll(cfg, mems, time.Now(), *cascade, *deepSleep)
	logger.Info("decay pass complete",
		zap.Int("processed", report.Processed),
		zap.Int("forget_candidates", len(report.ForgetCandidates)),
		zap.Int("promote_candidates", len(report.PromoteCandidates)),
	)

	if *outPath != "" {
		if err := saveMemories(*outPath, mems); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save memories: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cli.WriteDecayReport(os.Stdout, report, outputFormat(*jsonOut)); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runRank() {
	args := argsReorder(os.Args[2:])
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	docsPath := fs.String("docs", "", "documents file, one document per line")
	k1 := fs.Float64("k1", relevance.DefaultK1, "BM25 k1 (term-frequency saturation)")
	b := fs.Float64("b", relevance.DefaultB, "BM25 b (document-length normalization)")
	jsonOut := fs.Bool("json", false, "output JSON instead of text")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: kioku rank -docs FILE [flags] <query>\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	queryText := buildQueryText(fs.Args())
	if *docsPath == "" || queryText == "" {
		fs.Usage()
		os.Exit(1)
	}

	lines, err := readDocLines(*docsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load documents: %v\n", err)
		os.Exit(1)
	}

	docs := make([][]string, len(lines))
	totalLen := 0
	for i, line := range lines {
		docs[i] = relevance.Tokenize(line)
		totalLen += len(docs[i])
	}
	avgDocLen := 0.0
	if len(docs) > 0 {
		avgDocLen = float64(totalLen) / float64(len(docs))
	}

	queryTerms := relevance.Tokenize(queryText)
	scores := relevance.BM25Batch(queryTerms, docs, len(docs), avgDocLen, *k1, *b)

	ranked := make([]*cli.RankedDoc, len(lines))
	for i := range lines {
		ranked[i] = &cli.RankedDoc{Index: i, Score: scores[i], Content: lines[i]}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	for i, d := range ranked {
		d.Rank = i + 1
	}

	if err := cli.WriteRankedDocs(os.Stdout, ranked, outputFormat(*jsonOut)); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runBench() {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	dims := fs.Int("dims", 384, "embedding dimensions")
	storeSize := fs.Int("store", 1000, "stored vector count")
	iters := fs.Int("iters", 10, "iterations per measurement")
	_ = fs.Parse(os.Args[2:])

	rng := rand.New(rand.NewSource(1))
	query := randomVector(rng, *dims)
	store := make([][]float64, *storeSize)
	for i := range store {
		store[i] = randomVector(rng, *dims)
	}

	start := time.Now()
	for i := 0; i < *iters; i++ {
		for _, vec := range store {
			_ = similarity.Cosine(query, vec)
		}
	}
	single := time.Since(start) / time.Duration(*iters)

	start = time.Now()
	for i := 0; i < *iters; i++ {
		_ = similarity.CosineBatch(query, store)
	}
	batch := time.Since(start) / time.Duration(*iters)

	traces := make([]decay.Trace, *storeSize)
	elapsed := make([]float64, *storeSize)
	accesses := make([]int, *storeSize)
	for i := range traces {
		traces[i] = decay.Trace{Fast: rng.Float64(), Mid: rng.Float64(), Slow: rng.Float64()}
		elapsed[i] = rng.Float64() * 30
		accesses[i] = rng.Intn(20)
	}
	start = time.Now()
	for i := 0; i < *iters; i++ {
		_ = decay.TracesBatch(traces, elapsed, accesses, 0.20, 0.05, 0.005)
	}
	decayBatch := time.Since(start) / time.Duration(*iters)

	docs := make([][]string, *storeSize)
	vocab := []string{"memory", "decay", "trace", "vector", "score", "query", "recall", "note"}
	for i := range docs {
		doc := make([]string, 5+rng.Intn(20))
		for j := range doc {
			doc[j] = vocab[rng.Intn(len(vocab))]
		}
		docs[i] = doc
	}
	queryTerms := []string{"memory", "recall"}
	start = time.Now()
	for i := 0; i < *iters; i++ {
		_ = relevance.BM25Batch(queryTerms, docs, len(docs), 15, relevance.DefaultK1, relevance.DefaultB)
	}
	bm25 := time.Since(start) / time.Duration(*iters)

	fmt.Printf("dims=%d store=%d iters=%d\n\n", *dims, *storeSize, *iters)
	fmt.Printf("cosine one-by-one:   %v\n", single)
	fmt.Printf("cosine batch:        %v\n", batch)
	fmt.Printf("trace decay batch:   %v\n", decayBatch)
	fmt.Printf("bm25 batch:          %v\n", bm25)
}

func randomVector(rng *rand.Rand, dims int) []float64 {
	vec := make([]float64, dims)
	for i := range vec {
		vec[i] = rng.NormFloat64()
	}
	return vec
}

func runConfig() {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if resolvedPath == "" {
		fmt.Println("# built-in defaults (no config file found)")
	} else {
		fmt.Printf("# %s\n", resolvedPath)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal config: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}

func printUsage() {
	fmt.Println(`kioku - memory scoring and decay engine

Usage:
  kioku score -memories FILE [flags] <query>   Rank memories against a query
  kioku decay -memories FILE [flags]           Apply strength decay, report forget/promote candidates
  kioku rank -docs FILE [flags] <query>        BM25-rank documents against a query
  kioku bench [flags]                          Time the scoring kernels on synthetic data
  kioku config [flags]                         Print the effective configuration
  kioku version                                Show version
  kioku help                                   Show this help

Score Flags:
  --config string     Config file path (default: /usr/local/etc/kioku/config.yaml)
  --memories string   Memories file, one JSON record per line
  --vector string     Query embedding file (JSON number array); omit for keyword-only scoring
  --limit int         Number of results (default from config)
  --json              Output JSON instead of text

Decay Flags:
  --config string     Config file path
  --memories string   Memories file, one JSON record per line
  --out string        Write updated records here (omit for a dry run)
  --cascade           Cascade trace strength from fast toward slow
  --deep-sleep        With --cascade, also move mid-trace strength to slow
  --json              Output JSON instead of text

Rank Flags:
  --docs string       Documents file, one document per line
  --k1 float          BM25 k1 (default: 1.5)
  --b float           BM25 b (default: 0.75)
  --json              Output JSON instead of text

Bench Flags:
  --dims int          Embedding dimensions (default: 384)
  --store int         Stored vector count (default: 1000)
  --iters int         Iterations per measurement (default: 10)

Examples:
  kioku score -memories memories.jsonl what did we decide about caching
  kioku score -memories memories.jsonl -vector query-embedding.json -limit 5 cache decision
  kioku decay -memories memories.jsonl -cascade -out decayed.jsonl
  kioku rank -docs notes.txt quarterly budget
  kioku bench -store 5000`)
}
