package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// initRepo creates a throwaway repo with identity configured so commits work.
func initRepo(t *testing.T) *Repo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	for _, args := range [][]string{
		{"init", "-q"},
		{"config", "user.name", "herald-test"},
		{"config", "user.email", "herald@test.local"},
	} {
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v (%s)", args, err, out)
		}
	}

	repo, err := Open(context.Background(), dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return repo
}

func TestOpenNonRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	if _, err := Open(context.Background(), t.TempDir()); err == nil {
		t.Error("expected error for non-repo directory")
	}
}

func TestStageCommitFlow(t *testing.T) {
	repo := initRepo(t)
	ctx := context.Background()

	staged, err := repo.HasStagedChanges(ctx)
	if err != nil {
		t.Fatalf("HasStagedChanges: %v", err)
	}
	if staged {
		t.Error("fresh repo should have nothing staged")
	}

	if err := os.WriteFile(filepath.Join(repo.dir, "hello.txt"), []byte("hi\n"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := repo.StageAll(ctx); err != nil {
		t.Fatalf("StageAll: %v", err)
	}

	staged, err = repo.HasStagedChanges(ctx)
	if err != nil {
		t.Fatalf("HasStagedChanges: %v", err)
	}
	if !staged {
		t.Fatal("expected staged changes after StageAll")
	}

	changes, err := repo.StagedFiles(ctx)
	if err != nil {
		t.Fatalf("StagedFiles: %v", err)
	}
	if len(changes) != 1 || changes[0].Status != "A" || changes[0].Path != "hello.txt" {
		t.Errorf("changes = %+v", changes)
	}

	msg := Generate(changes)
	if err := repo.Commit(ctx, msg, false); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	staged, _ = repo.HasStagedChanges(ctx)
	if staged {
		t.Error("nothing should remain staged after commit")
	}

	branch, err := repo.CurrentBranch(ctx)
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch == "" {
		t.Error("branch name should not be empty")
	}
}
