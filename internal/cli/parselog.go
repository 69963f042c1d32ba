package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"autodocs/internal/buildlog"
)

var (
	parseLogPath   string
	parseLogOutput string
)

// parseLogCmd extracts the file list from a dotnet build log without
// running any rewrites.
var parseLogCmd = &cobra.Command{
	Use:   "parse-dotnet-build-log",
	Short: "Parse a dotnet build log and write the files missing documentation",
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, err := buildlog.Parse(parseLogPath, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if err := buildlog.WriteFileList(parseLogOutput, targets); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %s (%d warning(s))\n", parseLogOutput, len(targets))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseLogCmd)
	parseLogCmd.Flags().StringVarP(&parseLogPath, "path", "p", "", "path to the dotnet build log")
	parseLogCmd.Flags().StringVarP(&parseLogOutput, "output-file", "o", "", "path to the output file")
	_ = parseLogCmd.MarkFlagRequired("path")
	_ = parseLogCmd.MarkFlagRequired("output-file")
}
