// Package git shells out to the git binary for the small set of plumbing
// the commit helper needs.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Repo is a handle to a git work tree.
type Repo struct {
	dir string
}

// Open verifies dir is inside a git work tree and returns a Repo.
func Open(ctx context.Context, dir string) (*Repo, error) {
	r := &Repo{dir: dir}
	out, err := r.run(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil || strings.TrimSpace(out) != "true" {
		return nil, fmt.Errorf("not a git repository: %s", dir)
	}
	return r, nil
}

// run executes a git command in the repo directory and returns stdout.
func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", r.dir}, args...)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), fmt.Errorf("git %s: %w (%s)", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// StageAll stages every change in the work tree, including untracked files.
func (r *Repo) StageAll(ctx context.Context) error {
	_, err := r.run(ctx, "add", "-A")
	return err
}

// HasStagedChanges reports whether anything is staged for commit.
func (r *Repo) HasStagedChanges(ctx context.Context) (bool, error) {
	// diff --cached --quiet exits 1 when there are staged changes.
	cmd := exec.CommandContext(ctx, "git", "-C", r.dir, "diff", "--cached", "--quiet")
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return true, nil
		}
		return false, fmt.Errorf("git diff --cached: %w", err)
	}
	return false, nil
}

// StagedFiles returns the staged changes as status/path pairs.
func (r *Repo) StagedFiles(ctx context.Context) ([]FileChange, error) {
	out, err := r.run(ctx, "diff", "--cached", "--name-status")
	if err != nil {
		return nil, err
	}

	var changes []FileChange
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		// Rename lines are "R100\told\tnew"; take the new path.
		changes = append(changes, FileChange{
			Status: fields[0][:1],
			Path:   fields[len(fields)-1],
		})
	}
	return changes, nil
}

// Commit creates a commit with the given message.
func (r *Repo) Commit(ctx context.Context, message string, noVerify bool) error {
	args := []string{"commit", "-m", message}
	if noVerify {
		args = append(args, "--no-verify")
	}
	_, err := r.run(ctx, args...)
	return err
}

// Push pushes the current branch to its upstream.
func (r *Repo) Push(ctx context.Context) error {
	_, err := r.run(ctx, "push")
	return err
}

// CurrentBranch returns the checked-out branch name.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
