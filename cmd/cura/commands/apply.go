package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/meridios/cura/batch"
	"github.com/meridios/cura/config"
	"github.com/meridios/cura/display"
	"github.com/meridios/cura/errors"
	"github.com/meridios/cura/logger"
	"github.com/meridios/cura/remote"
	"github.com/meridios/cura/report"
	"github.com/meridios/cura/schema"
	"github.com/meridios/cura/tabular"
)

// ApplyCmd represents the apply command
var ApplyCmd = &cobra.Command{
	Use:   "apply <input-file>",
	Short: "Execute a modification table against the registry",
	Long: `Execute a modification table against the registry.

Reads a CSV table of record modifications, transforms each column value
into its registry property, merges the result into the record's current
metadata and writes it back through the registry API. Records are
processed one at a time; a failing record is reported and the run
continues with the next one.

Every run produces a report that is stored in the local run history
(see 'cura report ls').

Examples:
  cura apply changes.csv                    # Apply with configured settings
  cura apply changes.csv --dry-run          # Preview without writing
  cura apply changes.csv --batch-size 50    # Larger pacing batches
  cura apply changes.csv --scope 10.5072/   # Only matching resource IDs
  cura apply changes.csv --json             # Machine-readable report`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCuration(cmd, args[0], false)
	},
}

func init() {
	addRunFlags(ApplyCmd)
	ApplyCmd.Flags().Bool("dry-run", false, "Preview the run without writing to the registry")
}

// addRunFlags registers the flags apply and plan share.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("batch-size", 0, "Records per pacing batch (default from config)")
	cmd.Flags().Int("delay", 0, "Seconds to pause between batches (default from config)")
	cmd.Flags().String("scope", "", "Only process resource IDs with this prefix")
	cmd.Flags().String("registry", "", "Registry base URL (overrides config)")
	cmd.Flags().Bool("json", false, "Output the run report as JSON")
}

// runCuration is the shared engine behind apply and plan. plan sets
// forceDryRun, which wins over config and flags.
func runCuration(cmd *cobra.Command, inputPath string, forceDryRun bool) error {
	useJSON := display.ShouldOutputJSON(cmd)
	verbosity, _ := cmd.Flags().GetCount("verbose")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override config only when set on the command line
	flags := cmd.Flags()
	if flags.Changed("batch-size") {
		cfg.Batch.Size, _ = flags.GetInt("batch-size")
	}
	if flags.Changed("delay") {
		cfg.Batch.InterBatchDelaySeconds, _ = flags.GetInt("delay")
	}
	if flags.Changed("scope") {
		cfg.Batch.Scope, _ = flags.GetString("scope")
	}
	if flags.Changed("registry") {
		cfg.Registry.BaseURL, _ = flags.GetString("registry")
	}
	if flags.Changed("dry-run") {
		cfg.Batch.DryRun, _ = flags.GetBool("dry-run")
	}
	if forceDryRun {
		cfg.Batch.DryRun = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Registry.BaseURL == "" {
		return errors.New("no registry configured: set registry.base_url or CURA_REGISTRY_BASE_URL")
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	records, err := tabular.ReadRecords(file)
	file.Close()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}
	if len(records) == 0 {
		return errors.Wrapf(errors.ErrInvalidInput, "%s contains no records", inputPath)
	}

	registry, err := schema.Load(cfg.Schema.Extensions)
	if err != nil {
		return fmt.Errorf("failed to load field registry: %w", err)
	}

	client, err := remote.NewHTTPClient(remote.Options{
		BaseURL:           cfg.Registry.BaseURL,
		Token:             cfg.Registry.Token,
		Timeout:           cfg.RegistryTimeout(),
		RatePerSecond:     cfg.Registry.RatePerSecond,
		Burst:             cfg.Registry.Burst,
		MinServerVersion:  cfg.Registry.MinServerVersion,
		AllowPrivateHosts: cfg.Registry.AllowPrivateHosts,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Fail fast before touching any record
	info, err := client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("registry not reachable: %w", err)
	}
	logger.Infow("Registry reachable", "name", info.Name, "version", info.Version)

	var emitter batch.ProgressEmitter = batch.NopEmitter{}
	if !useJSON {
		emitter = batch.NewCLIEmitter(verbosity)
	}

	executor := batch.NewExecutor(client, registry, batch.Options{
		DryRun:          cfg.Batch.DryRun,
		BatchSize:       cfg.Batch.Size,
		InterBatchDelay: cfg.InterBatchDelay(),
		MaxAttempts:     cfg.Batch.MaxAttempts,
		Scope:           cfg.Batch.Scope,
		InputFile:       inputPath,
		RegistryURL:     cfg.Registry.BaseURL,
		Progress:        emitter,
	}, logger.Logger)

	rep, runErr := executor.Run(ctx, records)

	persistReport(rep)

	if useJSON {
		if err := display.OutputJSON(rep); err != nil {
			return err
		}
	} else {
		renderSummary(rep)
		renderFailures(rep)
	}

	if runErr != nil {
		return fmt.Errorf("run aborted: %w", runErr)
	}
	if sum := rep.Summary(); sum.Failed > 0 {
		return errors.Newf("%d of %d records failed (run %s)", sum.Failed, sum.Processed, rep.ID)
	}
	return nil
}

// persistReport stores the run in the history database. Persistence
// failures are logged, not fatal: the report was already shown.
func persistReport(rep *report.Report) {
	database, err := openDatabase("")
	if err != nil {
		logger.Warnw("Run history not saved", "error", err)
		return
	}
	defer database.Close()

	store := report.NewStore(database, logger.Logger)
	if err := store.SaveRun(rep); err != nil {
		logger.Warnw("Run history not saved", "error", err)
	}
}
