package tactics

import (
	"errors"
	"testing"

	"github.com/preston-bernstein/squad-planner/internal/domain/players"
	"github.com/preston-bernstein/squad-planner/internal/domain/positions"
)

func TestDefaultIsCompleteFourFourTwo(t *testing.T) {
	d := Default()
	if d.Formation != DefaultFormation {
		t.Fatalf("expected default formation %s, got %s", DefaultFormation, d.Formation)
	}
	if !d.Complete() {
		t.Fatalf("expected default tactics to be complete, counts=%v", d.Counts)
	}
	if len(d.Toggled) != 0 || len(d.Priorities) != 0 {
		t.Fatalf("expected no toggles or priorities by default")
	}
}

func TestEveryFormationTemplateIsComplete(t *testing.T) {
	for _, f := range Formations() {
		tac, err := Tactics{}.WithFormation(f.Name)
		if err != nil {
			t.Fatalf("%s: %v", f.Name, err)
		}
		if !tac.Complete() {
			t.Fatalf("%s: expected complete template, outfield=%d", f.Name, tac.OutfieldTotal())
		}
		total := 0
		for _, n := range f.Slots {
			total += n
		}
		if total != 11 {
			t.Fatalf("%s: expected 11 category slots, got %d", f.Name, total)
		}
	}
}

func TestIncrementRejectsOverflowAndKeepsPrior(t *testing.T) {
	full := Default()
	next, err := full.Increment(positions.CAM)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for 11th outfield slot, got %v", err)
	}
	if next.OutfieldTotal() != MaxOutfieldSlots || next.Count(positions.CAM) != 0 {
		t.Fatalf("expected prior configuration returned on rejection")
	}
	if full.Count(positions.CAM) != 0 {
		t.Fatalf("expected receiver untouched")
	}
}

func TestGoalkeeperLimit(t *testing.T) {
	tac := Tactics{Counts: map[positions.Position]int{}}
	tac, err := tac.Increment(positions.GK)
	if err != nil {
		t.Fatalf("expected first GK accepted, got %v", err)
	}
	if _, err := tac.Increment(positions.GK); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected second GK rejected, got %v", err)
	}
}

func TestDecrementBelowZeroRejected(t *testing.T) {
	tac := Tactics{Counts: map[positions.Position]int{}}
	if _, err := tac.Decrement(positions.ST); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected negative count rejected, got %v", err)
	}
	tac, _ = tac.Increment(positions.ST)
	tac, err := tac.Decrement(positions.ST)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, present := tac.Counts[positions.ST]; present {
		t.Fatalf("expected zero count removed from map")
	}
}

func TestIncrementDoesNotAliasReceiver(t *testing.T) {
	base := Tactics{Counts: map[positions.Position]int{positions.CB: 1}}
	next, err := base.Increment(positions.CB)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if base.Count(positions.CB) != 1 || next.Count(positions.CB) != 2 {
		t.Fatalf("expected copy-on-write, base=%d next=%d", base.Count(positions.CB), next.Count(positions.CB))
	}
}

func TestWithPrioritiesNormalizes(t *testing.T) {
	tac, err := Default().WithPriorities(positions.ST, []string{"SHOOTING", "strength", "pace", "shooting"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	got := tac.PriorityFor(positions.ST)
	if len(got) != 2 || got[0] != players.Shooting || got[1] != players.Pace {
		t.Fatalf("unexpected priorities %v", got)
	}

	if _, err := tac.WithPriorities(positions.ST, []string{"pace", "shooting", "passing", "physical"}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected more than 3 priorities rejected, got %v", err)
	}

	cleared, err := tac.WithPriorities(positions.ST, nil)
	if err != nil || len(cleared.PriorityFor(positions.ST)) != 0 {
		t.Fatalf("expected priorities cleared, got %v err=%v", cleared.PriorityFor(positions.ST), err)
	}
}

func TestWithToggleFlipsFlankOnly(t *testing.T) {
	tac, err := Default().WithToggle(positions.RB)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !tac.IsInverted(positions.RB) || !tac.ToggledSet()[positions.RB] {
		t.Fatalf("expected RB inverted")
	}
	tac, _ = tac.WithToggle(positions.LW)
	if len(tac.Toggled) != 2 || tac.Toggled[0] != positions.RB || tac.Toggled[1] != positions.LW {
		t.Fatalf("expected toggles in table order, got %v", tac.Toggled)
	}
	tac, _ = tac.WithToggle(positions.RB)
	if tac.IsInverted(positions.RB) {
		t.Fatalf("expected RB toggled back")
	}
	if _, err := tac.WithToggle(positions.CB); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected CB toggle rejected, got %v", err)
	}
}

func TestWithFormationKeepsPrioritiesAndToggles(t *testing.T) {
	tac, _ := Default().WithPriorities(positions.CB, []string{"defending"})
	tac, _ = tac.WithToggle(positions.LB)
	tac, err := tac.WithFormation("4-3-3")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if tac.Count(positions.RW) != 1 || tac.Count(positions.RM) != 0 {
		t.Fatalf("expected 4-3-3 template counts, got %v", tac.Counts)
	}
	if len(tac.PriorityFor(positions.CB)) != 1 || !tac.IsInverted(positions.LB) {
		t.Fatalf("expected priorities and toggles preserved")
	}
	if _, err := tac.WithFormation("2-3-5"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected unknown formation rejected, got %v", err)
	}
}

func TestConfiguredPositionsInTableOrder(t *testing.T) {
	got := Default().ConfiguredPositions()
	want := []positions.Position{positions.GK, positions.RB, positions.CB, positions.LB, positions.CM, positions.LM, positions.RM, positions.ST}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
