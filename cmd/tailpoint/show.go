package main

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tailpoint/tailpoint/checkpoint"
	"github.com/tailpoint/tailpoint/logger"
	"github.com/tailpoint/tailpoint/position"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "show the stored checkpoint and the resume mapping it implies",
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
			logger.Info("no checkpoint stored")
			return nil
		}
		if err != nil {
			return err
		}

		resumeMap, err := pos.ResumeMap()
		if err != nil {
			return err
		}

		if jsonOut {
			out, err := json.Marshal(map[string]any{
				"kind":      kindOf(pos),
				"persisted": pos.PersistedMap(),
				"resume":    resumeMap,
			})
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		logger.Infof("kind: %s", kindOf(pos))
		logger.Infof("persisted: %v", pos.PersistedMap())
		logger.Infof("resume: %v", resumeMap)
		return nil
	},
}

func kindOf(pos position.Position) string {
	switch pos.(type) {
	case position.GTIDPosition:
		return "gtid"
	case position.LogPosition:
		return "log"
	default:
		return fmt.Sprintf("%T", pos)
	}
}

func init() {
	showCmd.Flags().BoolVarP(&jsonOut, "json", "", false, "(Optional) Print as a single JSON document")
}
