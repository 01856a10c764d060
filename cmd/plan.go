package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"code.cloudfoundry.org/bytefmt"

	"github.com/lepinkainen/binforge/plan"
	"github.com/lepinkainen/binforge/types"
	"github.com/lepinkainen/binforge/ui"
)

type PlanCmd struct {
	TotalSize string `help:"Total size of generated data" default:"1GiB"`
	MinSize   string `help:"Minimum file size" default:"30MiB"`
	MaxSize   string `help:"Maximum file size" default:"50MiB"`
	Verbose   bool   `short:"v" help:"List every planned file"`
}

// Run computes and prints a partition without touching the filesystem.
func (cmd *PlanCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}

	cfg, err := parseSizes(cmd.TotalSize, cmd.MinSize, cmd.MaxSize)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	items, err := plan.Partition(cfg.Total, cfg.MinSize, cfg.MaxSize, rng)
	if err != nil {
		return err
	}

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("binforge %s (plan)", version)))
	if cmd.Verbose {
		for _, item := range items {
			fmt.Printf("  %s  %10s\n", item.Name, bytefmt.ByteSize(uint64(item.Size)))
		}
	}
	fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("%d files, %s total (%d bytes)",
		len(items), bytefmt.ByteSize(uint64(plan.Total(items))), plan.Total(items))))
	return nil
}
