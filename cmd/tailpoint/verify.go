package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tailpoint/tailpoint/checkpoint"
	"github.com/tailpoint/tailpoint/logger"
	"github.com/tailpoint/tailpoint/position"
	"github.com/tailpoint/tailpoint/utils"
)

var verifyParallel bool

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [state files]",
	Short: "check that checkpoint files survive a reconstruction round trip",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if statePath == "" && len(args) == 0 {
			return fmt.Errorf("--state or at least one state file argument required")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		files := args
		if len(files) == 0 {
			files = []string{statePath}
		}

		paths := []string{}
		for _, file := range files {
			if !utils.ExistInArray(paths, file) {
				paths = append(paths, file)
			}
		}

		checks := make([]func() error, 0, len(paths))
		for _, path := range paths {
			checks = append(checks, utils.ErrExecFormat(fmt.Sprintf("failed to verify %s: %%s", path), verifyFile(cmd.Context(), path)))
		}

		var err error
		if verifyParallel {
			err = utils.ErrExec(checks...)
		} else {
			err = utils.ErrExecSequential(checks...)
		}
		if err != nil {
			return err
		}

		logger.Infof("verified %d checkpoint %s", len(paths), utils.Ternary(len(paths) == 1, "file", "files").(string))
		return nil
	},
}

// verifyFile checks a single state file: the stored mapping must rebuild
// into a position, survive re-emission unchanged, and yield a resume
// mapping the transport could act on.
func verifyFile(ctx context.Context, path string) func() error {
	return func() error {
		store, err := checkpoint.NewFileStore(&checkpoint.Config{Path: path})
		if err != nil {
			return err
		}
		defer store.Close()

		stored, err := store.Load(ctx)
		if err != nil {
			return err
		}

		pos, err := position.FromMapping(stored)
		if err != nil {
			return err
		}

		emitted := pos.PersistedMap()
		if len(emitted) != len(stored) {
			return fmt.Errorf("not canonical: stored %v, re-emitted %v", stored, emitted)
		}
		rebuilt, err := position.FromMapping(emitted)
		if err != nil {
			return err
		}
		if rebuilt != pos {
			return fmt.Errorf("round trip changed the position: %v became %v", pos, rebuilt)
		}

		resumeMap, err := pos.ResumeMap()
		if err != nil {
			return err
		}

		logger.Infof("%s: %s checkpoint, resume %v", path, kindOf(pos), resumeMap)
		return nil
	}
}

func init() {
	verifyCmd.Flags().BoolVarP(&verifyParallel, "parallel", "", false, "(Optional) Verify the files concurrently")
}
