package main

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tailpoint/tailpoint/checkpoint"
	"github.com/tailpoint/tailpoint/logger"
	"github.com/tailpoint/tailpoint/resume"
)

// resumeCmd represents the resume command
var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "print the transport resume target for the stored checkpoint",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if statePath == "" {
			return fmt.Errorf("--state not passed")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := checkpoint.NewFileStore(&checkpoint.Config{Path: statePath})
		if err != nil {
			return err
		}
		defer store.Close()

		pos, err := checkpoint.Resolve(cmd.Context(), store)
		if errors.Is(err, checkpoint.ErrNoCheckpoint) {
			logger.Info("no checkpoint stored; the transport would tail from the current head")
			return nil
		}
		if err != nil {
			return err
		}

		target, err := resume.FromPosition(pos)
		if err != nil {
			return err
		}

		if jsonOut {
			return printTargetJSON(target)
		}

		switch {
		case target.IsGTID():
			logger.Infof("auto position: %s", target.GTIDSet())
		case target.IsFile():
			filePos := target.FilePosition()
			logger.Infof("file position: %s at %d", filePos.Name, filePos.Pos)
		default:
			logger.Info("no resume point; the transport would tail from the current head")
		}
		return nil
	},
}

func printTargetJSON(target resume.Target) error {
	doc := map[string]any{"mode": "none"}
	switch {
	case target.IsGTID():
		doc["mode"] = "gtid"
		doc["auto_position"] = target.GTIDSet().String()
	case target.IsFile():
		filePos := target.FilePosition()
		doc["mode"] = "file"
		doc["log_file"] = filePos.Name
		doc["log_pos"] = filePos.Pos
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func init() {
	resumeCmd.Flags().BoolVarP(&jsonOut, "json", "", false, "(Optional) Print as a single JSON document")
}
