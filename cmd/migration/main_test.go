package main

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/arena-scrim/internal/platform/logging"
)

type fakeMigrator struct {
	upErr   error
	steps   []int
	forced  int
	target  uint
	version uint
	verErr  error
}

func (f *fakeMigrator) Up() error { return f.upErr }

func (f *fakeMigrator) Steps(n int) error {
	f.steps = append(f.steps, n)
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, false, f.verErr }

func (f *fakeMigrator) Force(version int) error {
	f.forced = version
	return nil
}

func (f *fakeMigrator) Migrate(version uint) error {
	f.target = version
	return nil
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args    []string
		want    command
		wantErr bool
	}{
		{args: []string{"up"}, want: command{name: "up"}},
		{args: []string{"DOWN"}, want: command{name: "down", steps: 1}},
		{args: []string{"down", "3"}, want: command{name: "down", steps: 3}},
		{args: []string{"down", "0"}, wantErr: true},
		{args: []string{"force", "1"}, want: command{name: "force", force: 1}},
		{args: []string{"force"}, wantErr: true},
		{args: []string{"migrate", "2"}, want: command{name: "goto", target: 2}},
		{args: []string{"goto", "-1"}, wantErr: true},
		{args: []string{"seed"}, wantErr: true},
		{args: nil, wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseCommand(tt.args)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%v: expected error", tt.args)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%v: unexpected error %v", tt.args, err)
		}
		if got != tt.want {
			t.Fatalf("%v: expected %+v, got %+v", tt.args, tt.want, got)
		}
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	logger := logging.NewNop()

	up := &fakeMigrator{upErr: migrate.ErrNoChange}
	if err := run(up, command{name: "up"}, logger); err != nil {
		t.Fatalf("no change should not fail: %v", err)
	}

	down := &fakeMigrator{}
	if err := run(down, command{name: "down", steps: 2}, logger); err != nil {
		t.Fatalf("down: %v", err)
	}
	if len(down.steps) != 1 || down.steps[0] != -2 {
		t.Fatalf("expected a single -2 step, got %v", down.steps)
	}

	broken := &fakeMigrator{upErr: errors.New("dirty database")}
	if err := run(broken, command{name: "up"}, logger); err == nil {
		t.Fatalf("expected migration error to surface")
	}

	fresh := &fakeMigrator{verErr: migrate.ErrNilVersion}
	if err := run(fresh, command{name: "version"}, logger); err != nil {
		t.Fatalf("nil version should print none: %v", err)
	}

	target := &fakeMigrator{}
	if err := run(target, command{name: "goto", target: 1}, logger); err != nil || target.target != 1 {
		t.Fatalf("goto: err=%v target=%d", err, target.target)
	}
}
