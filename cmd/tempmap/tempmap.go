package tempmap

import (
	"github.com/spf13/cobra"

	"github.com/tphakala/roostlogger/internal/analysis"
	"github.com/tphakala/roostlogger/internal/conf"
)

// Command creates the tempmap command for rendering temperature by date and time of day.
func Command(ctx *conf.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tempmap INPUT [OUTPUT]",
		Short: "Render a temperature heatmap",
		Long: `Render temperature readings from a HumiTemp.txt log or an Anabat folder as a
heatmap of dates against time of day, with the daily range below.
OUTPUT defaults to INPUT with a .tempmap.png suffix.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx.Settings.Input.Path = args[0]
			if len(args) > 1 {
				ctx.Settings.Output.Path = args[1]
			}
			return analysis.TemperatureMap(ctx.Settings)
		},
	}

	setupFlags(cmd)

	return cmd
}

// setupFlags configures flags specific to the tempmap command.
func setupFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Duration("bin", conf.DefaultTempMapBin, "Size of a time bucket, must divide 24h")
	flags.StringP("summary", "s", "", "Write aggregated data as YAML to this file")
	flags.Float64("width", conf.DefaultWidthInches, "Image width in inches")
	flags.Float64("height", conf.DefaultHeightInches, "Image height in inches")

	conf.BindFlag(flags, "bin", "tempmap.binsize")
	conf.BindFlag(flags, "summary", "output.summary")
	conf.BindFlag(flags, "width", "output.width")
	conf.BindFlag(flags, "height", "output.height")
}
