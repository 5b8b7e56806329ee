package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/calref/herald/internal/git"
)

var (
	commitNoPush   bool
	commitNoVerify bool
)

var commitCmd = &cobra.Command{
	Use:   "commit [message]",
	Short: "Stage everything, commit, and push",
	Long:  "Stage all changes, commit with the given message (or one generated from the staged files), and push. The message must be imperative, capitalized, and at most 50 characters.",
	RunE:  runCommit,
}

func init() {
	commitCmd.Flags().BoolVar(&commitNoPush, "no-push", false, "Commit without pushing")
	commitCmd.Flags().BoolVar(&commitNoVerify, "no-verify", false, "Skip pre-commit hooks")
}

func runCommit(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	repo, err := git.Open(ctx, wd)
	if err != nil {
		return err
	}

	if err := repo.StageAll(ctx); err != nil {
		return fmt.Errorf("stage changes: %w", err)
	}

	staged, err := repo.HasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !staged {
		fmt.Println("Nothing to commit.")
		return nil
	}

	changes, err := repo.StagedFiles(ctx)
	if err != nil {
		return err
	}

	message := strings.Join(args, " ")
	if message == "" {
		message = git.Generate(changes)
		fmt.Printf("Generated message: %s\n", message)
	}
	if err := git.Validate(message); err != nil {
		return fmt.Errorf("commit message: %w", err)
	}

	if err := repo.Commit(ctx, message, commitNoVerify); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	fmt.Printf("Committed %d file(s): %s\n", len(changes), message)

	if commitNoPush {
		return nil
	}
	if err := repo.Push(ctx); err != nil {
		// Commit succeeded; a failed push is recoverable by hand.
		fmt.Fprintf(os.Stderr, "warning: push failed: %v\n", err)
		return nil
	}

	branch, err := repo.CurrentBranch(ctx)
	if err != nil {
		branch = "?"
	}
	fmt.Printf("Pushed to %s\n", branch)
	return nil
}
