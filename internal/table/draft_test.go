package table_test

import (
	"testing"

	"github.com/rmeucci/portfolio-bff-go/internal/domain"
	"github.com/rmeucci/portfolio-bff-go/internal/table"
)

func newOpEditor() *table.Editor[domain.Operation] {
	return table.NewEditor(opID, (*domain.Operation).SetField)
}

func TestEditor_StartEditCopiesRecord(t *testing.T) {
	e := newOpEditor()
	rec := sampleOps()[0]

	e.StartEdit(rec)
	if err := e.ChangeField("comment", "draft only"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	draft, ok := e.Draft()
	if !ok {
		t.Fatal("expected an active draft")
	}
	if draft.Comment != "draft only" {
		t.Errorf("draft not updated: %+v", draft)
	}
	if rec.Comment != "" {
		t.Errorf("original record changed: %+v", rec)
	}
}

func TestEditor_CancelDiscardsDraft(t *testing.T) {
	e := newOpEditor()
	e.StartEdit(sampleOps()[0])
	if err := e.ChangeField("quantity", 42.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e.Cancel()

	if _, ok := e.Draft(); ok {
		t.Error("expected no draft after cancel")
	}
	if e.EditingID() != 0 {
		t.Errorf("expected idle editor, editing %d", e.EditingID())
	}
}

func TestEditor_ChangeFieldWithoutEditFails(t *testing.T) {
	e := newOpEditor()

	err := e.ChangeField("comment", "x")

	var validation *domain.ErrValidation
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !asErr(err, &validation) {
		t.Fatalf("expected ErrValidation, got %T", err)
	}
}

func TestEditor_ChangeFieldTypeMismatch(t *testing.T) {
	e := newOpEditor()
	e.StartEdit(sampleOps()[0])

	if err := e.ChangeField("quantity", "lots"); err == nil {
		t.Error("expected type mismatch error")
	}

	draft, _ := e.Draft()
	if draft.Quantity != 1.5 {
		t.Errorf("failed write must not change the draft: %v", draft.Quantity)
	}
}

func TestEditor_UnknownFieldGoesToExtra(t *testing.T) {
	e := newOpEditor()
	e.StartEdit(sampleOps()[0])

	if err := e.ChangeField("tags", "etf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	draft, _ := e.Draft()
	if draft.Extra["tags"] != "etf" {
		t.Errorf("expected extra field write, got %+v", draft.Extra)
	}
}

func TestEditor_ExtraEditsDoNotLeakToRecord(t *testing.T) {
	e := newOpEditor()
	rec := domain.Operation{ID: 7, Extra: map[string]any{"note": "original"}}

	e.StartEdit(rec)
	if err := e.ChangeField("note", "edited"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	draft, _ := e.Draft()
	if draft.Extra["note"] != "edited" {
		t.Errorf("expected draft extra updated, got %v", draft.Extra["note"])
	}
	if rec.Extra["note"] != "original" {
		t.Errorf("checked-out record mutated through shared extra: %v", rec.Extra["note"])
	}

	e.Cancel()
	if rec.Extra["note"] != "original" {
		t.Errorf("record extra changed after cancel: %v", rec.Extra["note"])
	}
}

func TestEditor_StartEditReplacesPreviousDraft(t *testing.T) {
	e := newOpEditor()
	recs := sampleOps()

	e.StartEdit(recs[0])
	_ = e.ChangeField("comment", "first")
	e.StartEdit(recs[1])

	draft, ok := e.Draft()
	if !ok || draft.ID != 2 {
		t.Fatalf("expected draft of record 2, got %+v", draft)
	}
	if draft.Comment == "first" {
		t.Error("previous draft leaked into the new edit")
	}
}

func TestEditor_DiscardOnlyMatchingID(t *testing.T) {
	e := newOpEditor()
	e.StartEdit(sampleOps()[0])

	e.Discard(99)
	if e.EditingID() != 1 {
		t.Error("discard of another id must keep the edit")
	}

	e.Discard(1)
	if _, ok := e.Draft(); ok {
		t.Error("expected edit discarded for matching id")
	}
}
