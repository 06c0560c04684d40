package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/compare-names/internal/config"
	"github.com/compare-names/internal/db"
	"github.com/compare-names/internal/debug"
	"github.com/compare-names/internal/normalize"
	"github.com/compare-names/internal/pairindex"
	"github.com/compare-names/internal/phonetics"
	"github.com/compare-names/internal/pipeline"
	"github.com/compare-names/internal/scorer"
	"github.com/compare-names/internal/wordgraph"
)

var (
	// Settings shared by every subcommand, loaded before any of them runs
	settings *config.Settings
	verbose  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "namematch",
		Short:         "Personal name matching engine",
		Long:          `Cleans personal names, finds plausible same-person pairs in a corpus and scores them`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			settings, err = config.LoadSettings()
			if err != nil {
				return err
			}
			if verbose {
				settings.Debug = true
			}
			logger, err := debug.NewLogger(settings.Debug)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			debug.SetLogger(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = debug.Logger().Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVar(&verbose, "debug", false, "Enable debug output")

	rootCmd.AddCommand(createCleanCmd())
	rootCmd.AddCommand(createPhoneticCmd())
	rootCmd.AddCommand(createGraphCmd())
	rootCmd.AddCommand(createPairCmd())
	rootCmd.AddCommand(createScoreCmd())
	rootCmd.AddCommand(createRunCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadNames reads names from the positional args, an input file or postgres
func loadNames(ctx context.Context, args []string, input string, fromDB bool, query string) ([]string, error) {
	switch {
	case fromDB:
		return (&pipeline.DBSource{Query: query}).LoadNames(ctx)
	case input != "":
		return (&pipeline.FileSource{Path: input}).LoadNames(ctx)
	case len(args) > 0:
		return args, nil
	}
	return nil, fmt.Errorf("no names given: pass names, --input or --db")
}

func addSourceFlags(cmd *cobra.Command, input *string, fromDB *bool, query *string) {
	cmd.Flags().StringVarP(input, "input", "i", "", "File with one raw name per line (- for stdin)")
	cmd.Flags().BoolVar(fromDB, "db", false, "Read names from postgres (PG* environment variables)")
	cmd.Flags().StringVar(query, "query", "", "Names query, default $NAMES_QUERY or "+db.DefaultNamesQuery)
}

func createCleanCmd() *cobra.Command {
	var input, query string
	var fromDB, unique bool

	cmd := &cobra.Command{
		Use:   "clean [name...]",
		Short: "Normalize raw names",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := loadNames(cmd.Context(), args, input, fromDB, query)
			if err != nil {
				return err
			}
			if unique {
				for _, name := range normalize.CleanAll(raw) {
					fmt.Println(name)
				}
				return nil
			}
			for _, r := range raw {
				fmt.Println(normalize.CleanNameDebug(settings.Debug, r))
			}
			return nil
		},
	}

	addSourceFlags(cmd, &input, &fromDB, &query)
	cmd.Flags().BoolVar(&unique, "unique", false, "Drop duplicate cleaned names")
	return cmd
}

func createPhoneticCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phonetic word...",
		Short: "Show the phonetic form of words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				for _, word := range normalize.Words(normalize.CleanName(arg)) {
					fmt.Printf("%s\t%s\n", word, phonetics.Transcribe(word))
				}
			}
			return nil
		},
	}
}

func createGraphCmd() *cobra.Command {
	var input, query string
	var fromDB bool

	cmd := &cobra.Command{
		Use:   "graph [name...]",
		Short: "Show the word equivalence graph of a set of names",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := loadNames(cmd.Context(), args, input, fromDB, query)
			if err != nil {
				return err
			}
			names := normalize.CleanAll(raw)
			g := wordgraph.NewBuilder(settings.Workers).WithDebug(settings.Debug).Build(names)
			for _, word := range g.Words() {
				fmt.Printf("%s: %s\n", word, strings.Join(g.Matches(word), " "))
			}
			return nil
		},
	}

	addSourceFlags(cmd, &input, &fromDB, &query)
	return cmd
}

func createPairCmd() *cobra.Command {
	var input, query string
	var fromDB, escaped bool

	cmd := &cobra.Command{
		Use:   "pair [name...]",
		Short: "Show the word pair index of a set of names",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := loadNames(cmd.Context(), args, input, fromDB, query)
			if err != nil {
				return err
			}
			names := normalize.CleanAll(raw)

			key := pairindex.Key
			if escaped {
				key = pairindex.KeyEscaped
			}
			idx := pairindex.BuildWith(names, key)

			keys := make([]string, 0, len(idx))
			for k := range idx {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("%s: %s\n", k, strings.Join(idx[k], " | "))
			}
			return nil
		},
	}

	addSourceFlags(cmd, &input, &fromDB, &query)
	cmd.Flags().BoolVar(&escaped, "escaped", false, "Escape separators inside words")
	return cmd
}

func createScoreCmd() *cobra.Command {
	var input, output string
	var threshold float64
	var skipMalformed bool

	cmd := &cobra.Command{
		Use:   "score [name-a name-b]",
		Short: "Score two names, or a file of candidate pairs",
		Long: `With two arguments, print the word alignment and score of the two names.
With --input, score every ("a", "b") line of a candidate file and write ("a", "b", score) lines.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := scorer.NewScorer()

			if input == "" {
				if len(args) != 2 {
					return fmt.Errorf("score takes two names or --input")
				}
				a, b := normalize.CleanName(args[0]), normalize.CleanName(args[1])
				for _, m := range s.Matchups(a, b) {
					fmt.Printf("%-15s %-15s %6.2f\n", m.A.Text, m.B.Text, m.Score)
				}
				fmt.Printf("Score: %.2f\n", s.ScoreDebug(settings.Debug, a, b))
				return nil
			}

			if output == "" {
				return fmt.Errorf("--output is required with --input")
			}
			if cmd.Flags().Changed("threshold") {
				settings.Threshold = threshold
			}
			if cmd.Flags().Changed("skip-malformed") {
				settings.SkipMalformed = skipMalformed
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			stats, err := pipeline.ScoreFile(cmd.Context(), settings, s.Score, input, output)
			if err != nil {
				return err
			}

			fmt.Printf("\n=== Scoring Results ===\n")
			fmt.Printf("Lines Read: %d\n", stats.LinesRead)
			fmt.Printf("Emitted: %d\n", stats.Emitted)
			fmt.Printf("Below Threshold: %d\n", stats.BelowThreshold)
			fmt.Printf("Skipped: %d\n", stats.Skipped)
			fmt.Printf("Average Score: %.2f\n", stats.AverageScore)
			fmt.Printf("Time: %v\n", stats.ProcessingTime)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Candidate file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Scored output file")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum score to emit")
	cmd.Flags().BoolVar(&skipMalformed, "skip-malformed", false, "Skip unparsable lines instead of aborting")
	return cmd
}

func createRunCmd() *cobra.Command {
	var input, query, output, comparatorPath string
	var fromDB, score, noShuffle, keepWorkDir, skipMalformed bool
	var threshold float64
	var workers, chunkSize int
	var seed int64

	cmd := &cobra.Command{
		Use:   "run [name...]",
		Short: "Find candidate pairs in a name corpus and optionally score them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}

			flags := cmd.Flags()
			if flags.Changed("comparator") {
				settings.ComparatorPath = comparatorPath
			}
			if flags.Changed("threshold") {
				settings.Threshold = threshold
			}
			if flags.Changed("workers") {
				settings.Workers = workers
			}
			if flags.Changed("chunk-size") {
				settings.ChunkSize = chunkSize
			}
			if flags.Changed("seed") {
				settings.Seed = seed
			}
			if noShuffle {
				settings.Shuffle = false
			}
			if flags.Changed("skip-malformed") {
				settings.SkipMalformed = skipMalformed
			}

			raw, err := loadNames(cmd.Context(), args, input, fromDB, query)
			if err != nil {
				return err
			}

			opts := pipeline.Options{
				Settings:    settings,
				OutputPath:  output,
				KeepWorkDir: keepWorkDir,
			}
			if score {
				opts.Score = scorer.NewScorer().Score
			}

			result, err := pipeline.Run(cmd.Context(), raw, opts)
			if err != nil {
				return err
			}

			fmt.Printf("\n=== Run Results ===\n")
			fmt.Printf("Run ID: %s\n", result.RunID)
			fmt.Printf("Names: %d\n", result.Names)
			fmt.Printf("Words: %d\n", result.Words)
			fmt.Printf("Pair Keys: %d\n", result.PairKeys)
			fmt.Printf("Candidates: %d\n", result.Dedup.LinesWritten)
			if result.Scoring != nil {
				fmt.Printf("Scored Pairs: %d (threshold %.1f)\n", result.Scoring.Emitted, settings.Threshold)
			}
			if keepWorkDir {
				fmt.Printf("Work Dir: %s\n", result.WorkDir)
			}
			fmt.Printf("Output: %s\n", result.OutputPath)
			fmt.Printf("Time: %v\n", result.ProcessingTime)
			return nil
		},
	}

	addSourceFlags(cmd, &input, &fromDB, &query)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	cmd.Flags().StringVar(&comparatorPath, "comparator", "", "External comparator binary (default in-process)")
	cmd.Flags().BoolVar(&score, "score", false, "Score the candidate pairs")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum score to emit")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of parallel workers")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Lines per dedup chunk")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Shuffle seed")
	cmd.Flags().BoolVar(&noShuffle, "no-shuffle", false, "Keep the input order of names")
	cmd.Flags().BoolVar(&keepWorkDir, "keep-work-dir", false, "Keep the payload and intermediate files")
	cmd.Flags().BoolVar(&skipMalformed, "skip-malformed", false, "Skip unparsable candidate lines instead of aborting")
	return cmd
}
