package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"cradle/internal/policy"
	"cradle/internal/storage"
	cradleapi "cradle/pkg/cradle"
)

const exportsDir = "exports"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "simulate":
		return runSimulate(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "history":
		return runHistory(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	case "policies":
		return runPolicies(args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func newClient(storeKind, dbPath string) (*cradleapi.Client, error) {
	return cradleapi.New(cradleapi.Options{
		StoreKind:  storeKind,
		DBPath:     dbPath,
		ExportsDir: exportsDir,
	})
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "cradle.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "cradle.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Reset(ctx); err != nil {
		return err
	}

	fmt.Printf("reset store=%s\n", *storeKind)
	return nil
}

func runSimulate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "cradle.db", "sqlite database path")
	configPath := fs.String("config", "", "JSON config file for the simulation request")
	policyName := fs.String("policy", "always-feed", "policy: always-feed|never-feed|feed-when-crying|random")
	randomFeedP := fs.Float64("random-feed-p", 0.5, "feed probability for the random policy")
	episodes := fs.Int("episodes", 1, "number of independent episodes")
	steps := fs.Int("steps", 10, "steps per episode")
	seed := fs.Int64("seed", 0, "base random seed; episode k draws from seed+k")
	workers := fs.Int("workers", 4, "parallel episode workers")
	jsonOut := fs.Bool("json", false, "emit the run summary as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := cradleapi.SimulateRequest{
		Policy:      *policyName,
		RandomFeedP: *randomFeedP,
		Episodes:    *episodes,
		Steps:       *steps,
		Seed:        *seed,
		Workers:     *workers,
	}
	if *configPath != "" {
		fileReq, err := loadSimulateRequestFromConfig(*configPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", *configPath, err)
		}
		req = fileReq
		if err := overrideFromFlags(&req, fs); err != nil {
			return err
		}
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	started := time.Now()
	summary, err := client.Simulate(ctx, req)
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	if *jsonOut {
		payload, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(payload))
		return nil
	}

	totalSteps := int64(summary.Episodes) * int64(summary.Steps)
	fmt.Printf("simulation completed run_id=%s policy=%s episodes=%d steps=%d seed=%d\n",
		summary.RunID, summary.Policy, summary.Episodes, summary.Steps, summary.Seed)
	fmt.Printf("mean_reward=%.6f mean_discounted_return=%.6f crying_rate=%.4f\n",
		summary.MeanReward, summary.MeanDiscountedReturn, summary.CryingRate)
	for i, reward := range summary.EpisodeRewards {
		fmt.Printf("episode=%d total_reward=%.6f\n", i, reward)
	}
	fmt.Printf("simulated %s steps in %s\n", humanize.Comma(totalSteps), elapsed.Round(time.Microsecond))
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "cradle.db", "sqlite database path")
	limit := fs.Int("limit", 20, "maximum runs to list")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx, cradleapi.RunsRequest{Limit: *limit})
	if err != nil {
		return err
	}

	if *jsonOut {
		payload, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(payload))
		return nil
	}

	for _, item := range runs {
		created := item.CreatedAtUTC
		if stamp, err := time.Parse(time.RFC3339Nano, item.CreatedAtUTC); err == nil {
			created = humanize.Time(stamp)
		}
		fmt.Printf("run_id=%s created=%s model=%s policy=%s seed=%d episodes=%d steps=%d mean_reward=%.6f mean_discounted_return=%.6f\n",
			item.RunID, created, item.Model, item.Policy, item.Seed,
			item.Episodes, item.StepsPerEpisode, item.MeanReward, item.MeanDiscountedReturn)
	}
	return nil
}

func runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "cradle.db", "sqlite database path")
	runID := fs.String("run-id", "", "run id to inspect")
	jsonOut := fs.Bool("json", false, "emit reward history as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	history, err := client.History(ctx, cradleapi.HistoryRequest{RunID: *runID})
	if err != nil {
		return err
	}

	if *jsonOut {
		payload, err := json.MarshalIndent(history, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(payload))
		return nil
	}

	for i, reward := range history {
		fmt.Printf("episode=%d total_reward=%.6f\n", i, reward)
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "cradle.db", "sqlite database path")
	runID := fs.String("run-id", "", "run id to export")
	outDir := fs.String("out-dir", exportsDir, "artifact output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Export(ctx, cradleapi.ExportRequest{RunID: *runID, OutDir: *outDir})
	if err != nil {
		return err
	}

	fmt.Printf("exported run_id=%s dir=%s\n", summary.RunID, summary.Directory)
	return nil
}

func runPolicies(args []string) error {
	fs := flag.NewFlagSet("policies", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, name := range policy.Names() {
		fmt.Println(name)
	}
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: cradlectl <init|reset|simulate|runs|history|export|policies> [flags]", msg)
}
