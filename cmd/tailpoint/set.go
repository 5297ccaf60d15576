package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tailpoint/tailpoint/checkpoint"
	"github.com/tailpoint/tailpoint/logger"
	"github.com/tailpoint/tailpoint/position"
	"github.com/tailpoint/tailpoint/utils"
)

var (
	setGTID     string
	setLogFile  string
	setLogPos   uint32
	setOffset   int
	setFromFile string
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set",
	Short: "write a checkpoint from the given position",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		if statePath == "" {
			return fmt.Errorf("--state not passed")
		}

		modes := 0
		if setGTID != "" {
			modes++
		}
		if setLogFile != "" || setLogPos > 0 {
			modes++
		}
		if setFromFile != "" {
			modes++
		}
		if modes != 1 {
			return fmt.Errorf("pass exactly one of --gtid, --log-file with --log-pos, or --from-file")
		}
		if (setLogFile == "") != (setLogPos == 0) {
			return fmt.Errorf("--log-file and --log-pos go together")
		}
		if setOffset < 0 {
			return fmt.Errorf("--offset must be non-negative")
		}
		if setFromFile != "" && cmd.Flags().Changed("offset") {
			return fmt.Errorf("--offset cannot be combined with --from-file")
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		var m position.Mapping
		switch {
		case setFromFile != "":
			m = position.Mapping{}
			if err := utils.UnmarshalFile(setFromFile, &m); err != nil {
				return err
			}
		case setGTID != "":
			m = position.GTIDPosition{GTID: setGTID, Offset: setOffset}.PersistedMap()
		default:
			m = position.LogPosition{LogPos: setLogPos, LogFile: setLogFile, Offset: setOffset}.PersistedMap()
		}

		// refuse anything the factory could not bring back
		pos, err := position.FromMapping(m)
		if err != nil {
			return err
		}
		// and anything the transport could not resume from
		if _, err := pos.ResumeMap(); err != nil {
			return err
		}

		store, err := checkpoint.NewFileStore(&checkpoint.Config{Path: statePath})
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Save(cmd.Context(), pos.PersistedMap()); err != nil {
			return err
		}

		logger.Infof("checkpoint written to %s", statePath)
		return nil
	},
}

func init() {
	setCmd.Flags().StringVarP(&setGTID, "gtid", "", "", "(Optional) GTID of the last processed transaction, source_id:transaction_id")
	setCmd.Flags().StringVarP(&setLogFile, "log-file", "", "", "(Optional) Binlog file of the last processed event")
	setCmd.Flags().Uint32VarP(&setLogPos, "log-pos", "", 0, "(Optional) Byte offset within the binlog file")
	setCmd.Flags().IntVarP(&setOffset, "offset", "", 0, "(Optional) Row offset within the last transaction")
	setCmd.Flags().StringVarP(&setFromFile, "from-file", "", "", "(Optional) Read the mapping from a JSON file instead of flags")
}
