package main

import (
	"fmt"
	"time"

	"github.com/s4ng4/winelist"
	"github.com/s4ng4/winelist/sqlite"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	catalog, err := loadCatalog(deps)
	if err != nil {
		return err
	}
	wines := catalog.Wines()

	if !c.Force {
		hash := sqlite.HashWines(wines)
		existing, err := deps.Snapshots.FindSnapshots(deps.Ctx, winelist.SnapshotFilter{
			Source:      &deps.SourceName,
			ContentHash: &hash,
			Limit:       1,
		})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", winelist.ErrorMessage(err))
			return err
		}
		if len(existing) > 0 {
			fmt.Fprintf(deps.Stdout, "Catalog unchanged since snapshot %s. Use --force to store it again.\n", existing[0].ID)
			return nil
		}
	}

	snap := &winelist.Snapshot{
		Source: deps.SourceName,
		Total:  catalog.Report().Total,
	}
	if err := deps.Snapshots.CreateSnapshot(deps.Ctx, snap, wines); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", winelist.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Stored snapshot %s (%d of %d wines admitted)\n", snap.ID, snap.Admitted, snap.Total)
	return nil
}

// Run executes the snapshots command.
func (c *SnapshotsCmd) Run(deps *Dependencies) error {
	snaps, err := deps.Snapshots.FindSnapshots(deps.Ctx, winelist.SnapshotFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", winelist.ErrorMessage(err))
		return err
	}

	if len(snaps) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'winelist import' to create one.")
		return nil
	}

	for _, s := range snaps {
		fmt.Fprintf(deps.Stdout, "%s  %s  %4d wines  %s\n",
			s.ID, s.CreatedAt.Local().Format(time.DateTime), s.Admitted, s.Source)
	}
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return winelist.Errorf(winelist.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Snapshots.DeleteSnapshot(deps.Ctx, c.ID); err != nil {
		if winelist.ErrorCode(err) == winelist.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: snapshot %q not found. Use 'winelist snapshots' to see stored snapshots.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", winelist.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted snapshot %s\n", c.ID)
	return nil
}
