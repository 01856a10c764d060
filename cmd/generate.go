package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"code.cloudfoundry.org/bytefmt"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/binforge/gen"
	"github.com/lepinkainen/binforge/plan"
	"github.com/lepinkainen/binforge/report"
	"github.com/lepinkainen/binforge/source"
	"github.com/lepinkainen/binforge/types"
	"github.com/lepinkainen/binforge/ui"
	"github.com/lepinkainen/binforge/utils"
)

type GenerateCmd struct {
	Dir       string        `arg:"" optional:"" name:"dir" help:"Output directory" type:"path" default:"."`
	TotalSize string        `help:"Total size of generated data" default:"1GiB"`
	MinSize   string        `help:"Minimum file size" default:"30MiB"`
	MaxSize   string        `help:"Maximum file size" default:"50MiB"`
	ChunkSize string        `help:"Streaming write chunk size" default:"512KiB"`
	Interval  time.Duration `help:"Per-file progress report interval" default:"5s"`
	Workers   int           `help:"Number of parallel workers (0 = auto)" default:"0"`
	TUI       bool          `help:"Full-screen progress view"`
	Bar       bool          `help:"Single overall progress bar instead of per-event lines"`
	Yes       bool          `short:"y" help:"Skip the disk space confirmation prompt"`
}

func (cmd *GenerateCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}

	cfg, err := parseSizes(cmd.TotalSize, cmd.MinSize, cmd.MaxSize)
	if err != nil {
		return err
	}
	chunkSize, err := parseSize("chunk size", cmd.ChunkSize)
	if err != nil {
		return err
	}

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("binforge %s", version)))

	if err := os.MkdirAll(cmd.Dir, 0o755); err != nil {
		return fmt.Errorf("output directory: %w", err)
	}

	// Pre-flight: warn and confirm once before any file is planned or written
	if avail, err := utils.DiskAvailable(cmd.Dir); err != nil {
		fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("⚠️  Could not check disk space: %v", err)))
	} else if uint64(cfg.Total) > avail && !cmd.Yes {
		ok, err := utils.ConfirmShortfall(uint64(cfg.Total), avail)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("aborted: not enough disk space")
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	items, err := plan.Partition(cfg.Total, cfg.MinSize, cfg.MaxSize, rng)
	if err != nil {
		return err
	}
	totalBytes := plan.Total(items)

	workers := cmd.Workers
	if workers <= 0 {
		workers = gen.DefaultWorkers(len(items))
	}
	if workers > len(items) {
		workers = len(items)
	}

	fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("Generating %d files (%s) with %d workers in %s",
		len(items), bytefmt.ByteSize(uint64(totalBytes)), workers, cmd.Dir)))

	// Buffer sized so producers never block on a slow consumer
	events := make(chan gen.Event, 2*len(items)+256)

	pool := &gen.Pool{
		Workers:   workers,
		Dir:       cmd.Dir,
		ChunkSize: chunkSize,
		Interval:  cmd.Interval,
		NewSource: source.Default,
	}

	var failures []gen.Failure
	poolDone := make(chan struct{})
	go func() {
		failures = pool.Run(items, events)
		close(events)
		close(poolDone)
	}()

	if cmd.TUI {
		if err := runTUI(len(items), totalBytes, workers, version, events); err != nil {
			return err
		}
		<-poolDone
		printTUISummary(items, totalBytes, failures)
	} else {
		agg := &report.Aggregator{
			Items: len(items),
			Bytes: totalBytes,
			Out:   os.Stdout,
			Bar:   cmd.Bar,
		}
		agg.Run(events)
		<-poolDone
	}

	// Per-item failures are reported but do not fail the run
	if len(failures) > 0 {
		fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("❌ %d files failed:", len(failures))))
		for _, f := range failures {
			fmt.Printf("  %s: %v\n", f.Item.Name, f.Err)
		}
	}
	return nil
}

// runTUI renders the run with bubbletea, bridging pool events into the
// program. Quitting the view early does not stop generation; the bridge
// keeps draining so workers never block.
func runTUI(totalItems int, totalBytes int64, workers int, version string, events <-chan gen.Event) error {
	p := tea.NewProgram(ui.NewModel(totalItems, totalBytes, workers, version))

	go func() {
		for ev := range events {
			p.Send(ui.FromEvent(ev))
		}
	}()

	_, err := p.Run()
	return err
}

func printTUISummary(items []plan.Item, totalBytes int64, failures []gen.Failure) {
	var failedBytes int64
	for _, f := range failures {
		failedBytes += f.Item.Size
	}
	fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("Done: %d/%d files, %s",
		len(items)-len(failures), len(items), bytefmt.ByteSize(uint64(totalBytes-failedBytes)))))
}
