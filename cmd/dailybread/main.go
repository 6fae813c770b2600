// Command dailybread is the CLI tool for fetching a reading schedule's
// passages from scripture.api.bible into a local cache of JSON files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/DailyBread/core/digest"
	"github.com/FocuswithJustin/DailyBread/core/ref"
	"github.com/FocuswithJustin/DailyBread/core/schedule"
	"github.com/FocuswithJustin/DailyBread/core/sqlite"
	"github.com/FocuswithJustin/DailyBread/internal/apibible"
	"github.com/FocuswithJustin/DailyBread/internal/archive"
	"github.com/FocuswithJustin/DailyBread/internal/batch"
	"github.com/FocuswithJustin/DailyBread/internal/catalog"
	"github.com/FocuswithJustin/DailyBread/internal/config"
	"github.com/FocuswithJustin/DailyBread/internal/logging"
	"github.com/FocuswithJustin/DailyBread/internal/store"
)

const version = "0.1.0"

// CLI defines the command-line interface for dailybread.
var CLI struct {
	// Global flags
	Config    kong.ConfigFlag `help:"Load flag defaults from a TOML file" type:"existingfile"`
	LogLevel  string          `name:"log-level" help:"Log level" enum:"debug,info,warn,error" default:"info"`
	LogFormat string          `name:"log-format" help:"Log format" enum:"text,json" default:"text"`

	Fetch        FetchCmd        `cmd:"" help:"Fetch a schedule's passages into the local cache"`
	Parse        ParseCmd        `cmd:"" help:"Parse a reference and print its passage identifier"`
	Status       StatusCmd       `cmd:"" help:"Show cache catalog status"`
	Verify       VerifyCmd       `cmd:"" help:"Verify cached passages against the catalog"`
	Archive      ArchiveCmd      `cmd:"" help:"Pack a translation's cache into a tar.xz snapshot"`
	Translations TranslationsCmd `cmd:"" help:"List known translations"`
	Version      VersionCmd      `cmd:"" help:"Print version information"`
}

// FetchCmd walks a schedule file and caches one passage per dated line.
type FetchCmd struct {
	Schedule    string        `arg:"" help:"Schedule CSV file (date,...,reference per line)" type:"existingfile"`
	APIKey      string        `name:"api-key" help:"scripture.api.bible API key" env:"SCRIPTURE_API_KEY" required:""`
	APIURL      string        `name:"api-url" help:"Override the API base URL (default: production endpoint)"`
	Translation string        `help:"Translation to fetch" enum:"web,kjv,asv,bsb" default:"web"`
	Out         string        `help:"Cache root directory" type:"path" default:"out"`
	Pause       time.Duration `help:"Pause after each successful retrieval" default:"1s"`
	NoCatalog   bool          `name:"no-catalog" help:"Skip recording fetches in the run catalog"`
	DryRun      bool          `name:"dry-run" help:"Report what would be fetched without touching the network or disk"`
}

func (c *FetchCmd) Run() error {
	translation, err := apibible.LookupTranslation(c.Translation)
	if err != nil {
		return fmt.Errorf("unknown translation %q (valid: %s)", c.Translation, strings.Join(apibible.Names(), ", "))
	}

	entries, malformed, err := schedule.Load(c.Schedule)
	if err != nil {
		return fmt.Errorf("failed to read schedule: %w", err)
	}
	for _, m := range malformed {
		logging.Warn("malformed schedule line",
			"line", m.Line,
			"reason", m.Reason,
			"text", m.Text)
	}

	st := store.New(c.Out, translation.Name)

	var cat *catalog.Catalog
	if !c.NoCatalog && !c.DryRun {
		if err := os.MkdirAll(c.Out, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		cat, err = catalog.Open(filepath.Join(c.Out, "catalog.db"))
		if err != nil {
			return fmt.Errorf("failed to open catalog: %w", err)
		}
		defer cat.Close()
	}

	client := apibible.NewClient(c.APIURL, c.APIKey)

	runner := batch.NewRunner(batch.Config{
		Translation: translation.Name,
		BibleID:     translation.ID,
		Fetcher:     client,
		Store:       st,
		Catalog:     cat,
		Pause:       c.Pause,
		DryRun:      c.DryRun,
	})

	fmt.Printf("Fetching schedule: %s\n", c.Schedule)
	fmt.Printf("  Translation: %s (%s)\n", translation.Name, translation.Description)
	fmt.Printf("  Output: %s\n", st.Dir())
	fmt.Printf("  Entries: %d\n", len(entries))
	if len(malformed) > 0 {
		fmt.Printf("  Malformed lines skipped: %d\n", len(malformed))
	}
	if c.DryRun {
		fmt.Println("  Mode: dry run")
	}
	fmt.Println()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	res, runErr := runner.Run(ctx, entries)

	fmt.Printf("Run %s complete in %s\n", runner.RunID(), res.Duration.Round(time.Millisecond))
	fmt.Printf("  Fetched: %d\n", res.Fetched)
	fmt.Printf("  Skipped: %d\n", res.Skipped)
	fmt.Printf("  Errors:  %d\n", res.Errors)

	if runErr != nil {
		return fmt.Errorf("run interrupted: %w", runErr)
	}
	return nil
}

// ParseCmd parses a human-readable reference without fetching anything.
type ParseCmd struct {
	Reference []string `arg:"" help:"Reference to parse, e.g. \"John 9:1-12, 35-41\""`
}

func (c *ParseCmd) Run() error {
	raw := strings.Join(c.Reference, " ")
	id, err := ref.Parse(raw)
	if err != nil {
		return fmt.Errorf("failed to parse %q: %w", raw, err)
	}
	fmt.Println(id.String())
	return nil
}

// StatusCmd reports what the catalog knows about the cache.
type StatusCmd struct {
	Out         string `help:"Cache root directory" type:"path" default:"out"`
	Translation string `help:"Limit the report to one translation"`
	Runs        int    `help:"Number of recent runs to show" default:"5"`
}

func (c *StatusCmd) Run() error {
	path := filepath.Join(c.Out, "catalog.db")
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no catalog at %s (run fetch first)", path)
	}

	names, err := translationNames(c.Translation)
	if err != nil {
		return err
	}

	cat, err := catalog.OpenReadOnly(path)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer cat.Close()

	ctx := context.Background()
	info := sqlite.GetInfo()
	fmt.Printf("Catalog: %s\n", path)
	fmt.Printf("  Driver: %s (%s, cgo=%v)\n", info.Package, info.DriverType, info.IsCGO)
	fmt.Println()

	var rows [][]string
	for _, name := range names {
		sum, err := cat.Summarize(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to summarize %s: %w", name, err)
		}
		if sum.Records == 0 && c.Translation == "" {
			continue
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", sum.Records),
			sum.FirstDate,
			sum.LastDate,
			formatBytes(sum.TotalBytes),
		})
	}
	if len(rows) == 0 {
		fmt.Println("No cached passages recorded.")
	} else {
		fmt.Println(renderTable(
			[]string{"Translation", "Records", "First", "Last", "Size"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignRight},
		))
	}

	runs, err := cat.Runs(ctx, c.Runs)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		return nil
	}

	var runRows [][]string
	for _, r := range runs {
		runRows = append(runRows, []string{
			r.StartedAt.Format(time.RFC3339),
			r.Translation,
			fmt.Sprintf("%d", r.Fetched),
			fmt.Sprintf("%d", r.Skipped),
			fmt.Sprintf("%d", r.Errors),
			runDuration(r),
		})
	}
	fmt.Println()
	fmt.Println(renderTable(
		[]string{"Started", "Translation", "Fetched", "Skipped", "Errors", "Duration"},
		runRows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	))
	return nil
}

// runDuration formats a run's wall time, or "-" while it is still open.
func runDuration(r *catalog.Run) string {
	if r.FinishedAt.IsZero() {
		return "-"
	}
	return r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()
}

// VerifyCmd re-checks every cataloged passage file on disk.
type VerifyCmd struct {
	Out         string `help:"Cache root directory" type:"path" default:"out"`
	Translation string `help:"Limit verification to one translation"`
}

func (c *VerifyCmd) Run() error {
	path := filepath.Join(c.Out, "catalog.db")
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no catalog at %s (run fetch first)", path)
	}

	names, err := translationNames(c.Translation)
	if err != nil {
		return err
	}

	cat, err := catalog.OpenReadOnly(path)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer cat.Close()

	ctx := context.Background()
	total := 0
	failed := 0

	for _, name := range names {
		fetches, err := cat.Fetches(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to list fetches for %s: %w", name, err)
		}
		if len(fetches) == 0 {
			continue
		}
		fmt.Printf("Verifying %s (%d records):\n", name, len(fetches))
		for _, f := range fetches {
			total++
			if problem := checkFetch(f); problem != "" {
				failed++
				fmt.Printf("  [FAIL] %s %s: %s\n", f.Date, f.PassageID, problem)
				continue
			}
			fmt.Printf("  [OK] %s %s (%d bytes)\n", f.Date, f.PassageID, f.SizeBytes)
		}
	}

	fmt.Println()
	fmt.Printf("Verified %d record(s): %d ok, %d failed\n", total, total-failed, failed)
	if failed > 0 {
		return fmt.Errorf("verification failed for %d record(s)", failed)
	}
	if total > 0 {
		fmt.Println("Verification passed!")
	}
	return nil
}

// checkFetch returns an empty string when the record matches the file on
// disk, or a short description of the first mismatch found.
func checkFetch(f *catalog.Fetch) string {
	if _, err := ref.ParseID(f.PassageID); err != nil {
		return fmt.Sprintf("bad passage identifier: %v", err)
	}
	fi, err := os.Stat(f.Path)
	if err != nil {
		return "file missing"
	}
	if fi.Size() != f.SizeBytes {
		return fmt.Sprintf("size mismatch: catalog %d, disk %d", f.SizeBytes, fi.Size())
	}
	sum, err := digest.SumFile(f.Path)
	if err != nil {
		return fmt.Sprintf("unreadable: %v", err)
	}
	if sum != f.ContentHash {
		return "content hash mismatch"
	}
	return ""
}

// ArchiveCmd packs one translation's cache directory into a snapshot.
type ArchiveCmd struct {
	Translation string `arg:"" help:"Translation cache to pack" enum:"web,kjv,asv,bsb"`
	Out         string `help:"Cache root directory" type:"path" default:"out"`
	Dest        string `help:"Directory to write the snapshot into" type:"path" default:"."`
}

func (c *ArchiveCmd) Run() error {
	srcDir := filepath.Join(c.Out, c.Translation)
	if _, err := os.Stat(srcDir); err != nil {
		return fmt.Errorf("no cache directory at %s (run fetch first)", srcDir)
	}

	name := archive.SnapshotName(c.Translation, time.Now())
	dstPath := filepath.Join(c.Dest, name)
	if err := archive.CreateTarXZ(srcDir, dstPath, c.Translation, true); err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}

	entries, err := archive.List(dstPath)
	if err != nil {
		return fmt.Errorf("failed to read back snapshot: %w", err)
	}
	fi, err := os.Stat(dstPath)
	if err != nil {
		return fmt.Errorf("failed to stat snapshot: %w", err)
	}

	fmt.Printf("Snapshot created: %s\n", dstPath)
	fmt.Printf("  Entries: %d\n", len(entries))
	fmt.Printf("  Size: %s\n", formatBytes(fi.Size()))
	return nil
}

// TranslationsCmd lists the translations fetch accepts.
type TranslationsCmd struct{}

func (c *TranslationsCmd) Run() error {
	var rows [][]string
	for _, tr := range apibible.Translations() {
		rows = append(rows, []string{tr.Name, tr.Abbreviation, tr.ID, tr.Description})
	}
	fmt.Println(renderTable(
		[]string{"Name", "Abbrev", "Collection ID", "Description"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	))
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("dailybread version %s\n", version)
	return nil
}

// translationNames resolves an optional filter to the translations a
// catalog-reading command should cover.
func translationNames(filter string) ([]string, error) {
	if filter == "" {
		return apibible.Names(), nil
	}
	if _, err := apibible.LookupTranslation(filter); err != nil {
		return nil, fmt.Errorf("unknown translation %q (valid: %s)", filter, strings.Join(apibible.Names(), ", "))
	}
	return []string{filter}, nil
}

func parseLogLevel(s string) logging.Level {
	switch s {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseLogFormat(s string) logging.Format {
	if s == "json" {
		return logging.FormatJSON
	}
	return logging.FormatText
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("dailybread"),
		kong.Description("Reading schedule fetch-and-cache utility for scripture.api.bible."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Configuration(config.TOML, "/etc/dailybread/config.toml", "~/.config/dailybread/config.toml"),
	)
	logging.InitLogger(parseLogLevel(CLI.LogLevel), parseLogFormat(CLI.LogFormat))
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
