package teams

import (
	"errors"
	"reflect"
	"testing"
)

func TestTeamJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}
	teamType := reflect.TypeOf(Team{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"Name", "name"},
		{"Country", "country"},
		{"Logo", "logo,omitempty"},
	}
	for _, fc := range fields {
		f, ok := teamType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if tag := f.Tag.Get("json"); tag != fc.tag {
			t.Fatalf("field %s expected tag %s, got %s", fc.name, fc.tag, tag)
		}
	}
}

func TestTeamValidate(t *testing.T) {
	if err := (Team{Name: "Arsenal", Country: "England"}).Validate(); err != nil {
		t.Fatalf("expected valid team, got %v", err)
	}
	if err := (Team{Country: "England"}).Validate(); !errors.Is(err, ErrInvalidTeam) {
		t.Fatalf("expected ErrInvalidTeam for missing name, got %v", err)
	}
	if err := (Team{Name: "Arsenal"}).Validate(); !errors.Is(err, ErrInvalidTeam) {
		t.Fatalf("expected ErrInvalidTeam for missing country, got %v", err)
	}
}
