package table_test

import (
	"testing"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
	"github.com/rmeucci/portfolio-bff-go/internal/table"
)

func opID(rec domain.Operation) int64 { return rec.ID }

func TestCache_ReplaceAndSnapshot(t *testing.T) {
	c := table.NewCache(opID)

	c.Replace(sampleOps())

	if c.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", c.Len())
	}
	snap := c.Snapshot()
	if !equalIDs(ids(snap), []int64{1, 2, 3}) {
		t.Errorf("unexpected snapshot: %v", ids(snap))
	}
}

func TestCache_SnapshotSurvivesMutation(t *testing.T) {
	c := table.NewCache(opID)
	c.Replace(sampleOps())

	snap := c.Snapshot()
	c.ApplyDelete(1)
	c.ApplyInsert(domain.Operation{ID: 9})

	if !equalIDs(ids(snap), []int64{1, 2, 3}) {
		t.Errorf("earlier snapshot changed after mutations: %v", ids(snap))
	}
}

func TestCache_ApplyUpdate(t *testing.T) {
	c := table.NewCache(opID)
	c.Replace(sampleOps())

	updated := sampleOps()[1]
	updated.Comment = "adjusted"
	if !c.ApplyUpdate(updated) {
		t.Fatal("expected update to match record 2")
	}

	snap := c.Snapshot()
	if snap[1].Comment != "adjusted" {
		t.Errorf("record 2 not updated: %+v", snap[1])
	}
	if !equalIDs(ids(snap), []int64{1, 2, 3}) {
		t.Errorf("update must not reorder: %v", ids(snap))
	}
}

func TestCache_ApplyUpdateMissIsNoOp(t *testing.T) {
	c := table.NewCache(opID)
	c.Replace(sampleOps())

	if c.ApplyUpdate(domain.Operation{ID: 99}) {
		t.Fatal("expected no match for unknown id")
	}
	if !equalIDs(ids(c.Snapshot()), []int64{1, 2, 3}) {
		t.Error("cache changed on unmatched update")
	}
}

func TestCache_ApplyInsertAppends(t *testing.T) {
	c := table.NewCache(opID)
	c.Replace(sampleOps())

	c.ApplyInsert(domain.Operation{ID: 4, AssetSymbol: "ETH"})

	snap := c.Snapshot()
	if !equalIDs(ids(snap), []int64{1, 2, 3, 4}) {
		t.Errorf("expected append at the end, got %v", ids(snap))
	}
}

func TestCache_ApplyDelete(t *testing.T) {
	c := table.NewCache(opID)
	c.Replace(sampleOps())

	if !c.ApplyDelete(2) {
		t.Fatal("expected delete to match record 2")
	}
	if !equalIDs(ids(c.Snapshot()), []int64{1, 3}) {
		t.Errorf("unexpected records after delete: %v", ids(c.Snapshot()))
	}
	if c.ApplyDelete(2) {
		t.Error("second delete of same id must be a no-op")
	}
}

func TestCache_ClearEmptiesRecords(t *testing.T) {
	c := table.NewCache(opID)
	c.Replace(sampleOps())

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d records", c.Len())
	}
}

func TestCache_GenerationAdvancesOnMutation(t *testing.T) {
	c := table.NewCache(opID)
	g0 := c.Generation()

	c.Replace(sampleOps())
	g1 := c.Generation()
	c.ApplyDelete(1)
	g2 := c.Generation()

	if g1 <= g0 || g2 <= g1 {
		t.Errorf("generation must advance: %d, %d, %d", g0, g1, g2)
	}
}
