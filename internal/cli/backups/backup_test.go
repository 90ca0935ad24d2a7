package backups

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/storage"
	"github.com/julianstephens/moodlit/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	out := &bytes.Buffer{}
	ctx := &cli.Context{Store: store, Out: out}
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx, out
}

func addEntry(t *testing.T, ctx *cli.Context, comment string) {
	t.Helper()
	j, err := ctx.Journal()
	if err != nil {
		t.Fatal(err)
	}
	j.Add(comment, models.NewDate(2024, 1, 1), models.MoodNormal)
	if err := ctx.PersistErr(); err != nil {
		t.Fatal(err)
	}
}

func comments(t *testing.T, path string) []string {
	t.Helper()
	store := sqlite.NewStore(path)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	snap, err := store.LoadJournal()
	if err != nil {
		t.Fatal(err)
	}
	var out []string
	for _, e := range snap.Entries {
		out = append(out, e.Comment)
	}
	return out
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("empty list output = %q", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if !strings.Contains(out.String(), "Backup created: moodlit-") {
		t.Errorf("create output = %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("list output = %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out := setupTestDB(t)
	addEntry(t, ctx, "before")
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	backups, err := ctx.BackupManager().List()
	if err != nil || len(backups) != 1 {
		t.Fatalf("backups = %v, %v", backups, err)
	}
	addEntry(t, ctx, "after")

	ctx.In = strings.NewReader("n\n")
	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backups[0].Path)}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("output = %q", out.String())
	}
	if got := comments(t, ctx.Store.GetConfigPath()); len(got) != 2 {
		t.Fatalf("cancelled restore changed the journal: %v", got)
	}

	ctx.In = strings.NewReader("yes\n")
	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backups[0].Path)}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Journal restored successfully") || !strings.Contains(out.String(), "Previous journal saved as") {
		t.Errorf("output = %q", out.String())
	}
	if got := comments(t, ctx.Store.GetConfigPath()); len(got) != 1 || got[0] != "before" {
		t.Errorf("restored journal = %v", got)
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&BackupRestoreCmd{BackupFile: "moodlit-nope.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for a missing backup")
	}
}

func TestBackupsRequireSQLite(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "moodlit.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	ctx := &cli.Context{Store: store, Out: &bytes.Buffer{}}

	for name, err := range map[string]error{
		"create":  (&BackupCreateCmd{}).Run(ctx),
		"list":    (&BackupListCmd{}).Run(ctx),
		"restore": (&BackupRestoreCmd{BackupFile: "x.db", Yes: true}).Run(ctx),
	} {
		if !errors.Is(err, errNoBackups) {
			t.Errorf("%s: expected errNoBackups, got %v", name, err)
		}
	}
}

func TestResolveBackupPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moodlit-20240101-120000.db")
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	if got, err := resolveBackupPath(path, dir); err != nil || got != path {
		t.Errorf("absolute path: %q, %v", got, err)
	}
	if got, err := resolveBackupPath(filepath.Base(path), dir); err != nil || got != path {
		t.Errorf("bare name: %q, %v", got, err)
	}
	if _, err := resolveBackupPath(filepath.Join(dir, "missing.db"), dir); err == nil {
		t.Error("expected error for missing absolute path")
	}
	if _, err := resolveBackupPath("missing.db", dir); err == nil {
		t.Error("expected error for missing name")
	}
}
