package heatmap

import (
	"github.com/spf13/cobra"

	"github.com/tphakala/roostlogger/internal/analysis"
	"github.com/tphakala/roostlogger/internal/conf"
)

// Command creates the heatmap command for rendering activity by night and time of night.
func Command(ctx *conf.Context) *cobra.Command {
	var linear bool

	cmd := &cobra.Command{
		Use:   "heatmap INPUT [OUTPUT]",
		Short: "Render a bat activity heatmap",
		Long: `Render detections from a log file or Anabat folder as a heatmap of nights
against time of night. OUTPUT defaults to INPUT with a .heatmap.png suffix.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx.Settings.Input.Path = args[0]
			if len(args) > 1 {
				ctx.Settings.Output.Path = args[1]
			}
			if linear {
				ctx.Settings.Heatmap.LogScale = false
			}
			return analysis.Heatmap(ctx.Settings)
		},
	}

	cmd.Flags().BoolVar(&linear, "linear", false, "Map raw counts to color instead of log scaled counts")
	setupFlags(cmd)

	return cmd
}

// setupFlags configures flags specific to the heatmap command.
func setupFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Duration("bin", conf.DefaultHeatmapBin, "Size of a time bucket, must divide 24h")
	flags.Duration("night-offset", conf.DefaultNightOffset, "Time of day a night starts")
	flags.Bool("civil-twilight", false, "Also draw civil dusk and dawn when a location is set")
	flags.StringP("summary", "s", "", "Write aggregated data as YAML to this file")
	flags.Float64("width", conf.DefaultWidthInches, "Image width in inches")
	flags.Float64("height", conf.DefaultHeightInches, "Image height in inches")

	conf.BindFlag(flags, "bin", "heatmap.binsize")
	conf.BindFlag(flags, "night-offset", "heatmap.nightoffset")
	conf.BindFlag(flags, "civil-twilight", "heatmap.civiltwilight")
	conf.BindFlag(flags, "summary", "output.summary")
	conf.BindFlag(flags, "width", "output.width")
	conf.BindFlag(flags, "height", "output.height")
}
