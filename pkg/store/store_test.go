package store

import (
	"context"
	"strings"
	"testing"

	"github.com/ringforge/ringforge/pkg/errors"
	"github.com/ringforge/ringforge/pkg/plan"
)

func testDoc(name string) plan.Document {
	return plan.Document{
		Name:     name,
		Topology: plan.Topology{NInput: 3, NHidden: 2, NOutput: 1},
		Board:    plan.Board{DiameterMM: 400},
		Rings: []plan.RingInfo{
			{Kind: "rule", OuterRadiusMM: 200, WidthMM: 12, Layer: 0},
		},
	}
}

// Both backends must satisfy the same behavior.
func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStoreSaveAndGet(t *testing.T) {
	ctx := context.Background()

	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			saved, err := s.Save(ctx, testDoc("demo"))
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if saved.ID == "" {
				t.Error("Save should assign an ID")
			}
			if saved.CreatedAt.IsZero() {
				t.Error("Save should set CreatedAt")
			}

			got, err := s.Get(ctx, saved.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Name != "demo" || got.Topology.NInput != 3 {
				t.Errorf("Get returned wrong document: %+v", got)
			}

			byName, err := s.GetByName(ctx, "demo")
			if err != nil {
				t.Fatalf("GetByName: %v", err)
			}
			if byName.ID != saved.ID {
				t.Errorf("GetByName ID = %q, want %q", byName.ID, saved.ID)
			}
		})
	}
}

func TestStoreNotFound(t *testing.T) {
	ctx := context.Background()

	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "missing")
			if errors.GetCode(err) != errors.ErrCodePlanNotFound {
				t.Errorf("Get missing: code = %v, want PLAN_NOT_FOUND", errors.GetCode(err))
			}
			_, err = s.GetByName(ctx, "missing")
			if errors.GetCode(err) != errors.ErrCodePlanNotFound {
				t.Errorf("GetByName missing: code = %v, want PLAN_NOT_FOUND", errors.GetCode(err))
			}
			err = s.Delete(ctx, "missing")
			if errors.GetCode(err) != errors.ErrCodePlanNotFound {
				t.Errorf("Delete missing: code = %v, want PLAN_NOT_FOUND", errors.GetCode(err))
			}

			// Keys pass through as message arguments, so printf verbs
			// in a name must come out verbatim.
			_, err = s.GetByName(ctx, "100%-done")
			if err == nil || !strings.Contains(err.Error(), "100%-done") {
				t.Errorf("GetByName message = %v, want the name verbatim", err)
			}
		})
	}
}

func TestStoreSaveReplacesByName(t *testing.T) {
	ctx := context.Background()

	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			first, err := s.Save(ctx, testDoc("demo"))
			if err != nil {
				t.Fatalf("Save first: %v", err)
			}

			updated := testDoc("demo")
			updated.Board.DiameterMM = 500
			second, err := s.Save(ctx, updated)
			if err != nil {
				t.Fatalf("Save second: %v", err)
			}

			docs, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(docs) != 1 {
				t.Fatalf("List returned %d docs, want 1 (same name replaces)", len(docs))
			}
			if docs[0].ID != second.ID {
				t.Errorf("kept doc ID = %q, want %q", docs[0].ID, second.ID)
			}
			if docs[0].Board.DiameterMM != 500 {
				t.Errorf("kept doc diameter = %v, want 500", docs[0].Board.DiameterMM)
			}

			if _, err := s.Get(ctx, first.ID); errors.GetCode(err) != errors.ErrCodePlanNotFound {
				t.Error("replaced document should be gone")
			}
		})
	}
}

func TestStoreListAndDelete(t *testing.T) {
	ctx := context.Background()

	for name, s := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			a, _ := s.Save(ctx, testDoc("alpha"))
			b, _ := s.Save(ctx, testDoc("beta"))

			docs, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(docs) != 2 {
				t.Fatalf("List returned %d docs, want 2", len(docs))
			}

			if err := s.Delete(ctx, a.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			docs, _ = s.List(ctx)
			if len(docs) != 1 || docs[0].ID != b.ID {
				t.Errorf("after delete: %d docs remain", len(docs))
			}
		})
	}
}

func TestStoreRoundTripRebuild(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	doc := testDoc("rebuild")
	doc.Board = plan.Board{DiameterMM: 400, Policy: "equal"}
	saved, err := s.Save(ctx, doc)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, _, err := got.Rebuild(); err != nil {
		t.Errorf("stored document should rebuild: %v", err)
	}
}
