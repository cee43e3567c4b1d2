package report

import (
	"github.com/spf13/cobra"

	"github.com/tphakala/roostlogger/internal/analysis"
	"github.com/tphakala/roostlogger/internal/conf"
)

// Command creates the report command for nightly activity above daily temperatures.
func Command(ctx *conf.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report INPUT [OUTPUT]",
		Short: "Render nightly activity with daily temperatures",
		Long: `Render nightly detection counts or call durations above the daily temperature
range. Temperatures are read from INPUT unless --temperature names a separate
log. OUTPUT defaults to INPUT with a .report.png suffix.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx.Settings.Input.Path = args[0]
			if len(args) > 1 {
				ctx.Settings.Output.Path = args[1]
			}
			return analysis.Report(ctx.Settings)
		},
	}

	setupFlags(cmd)

	return cmd
}

// setupFlags configures flags specific to the report command.
func setupFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("temperature", "t", "", "Separate temperature log, such as HumiTemp.txt")
	flags.StringP("metric", "m", conf.MetricCount, "Activity metric: count or duration")
	flags.Duration("night-offset", conf.DefaultNightOffset, "Time of day a night starts")
	flags.StringP("summary", "s", "", "Write aggregated data as YAML to this file")
	flags.Float64("width", conf.DefaultWidthInches, "Image width in inches")
	flags.Float64("height", conf.DefaultHeightInches, "Image height in inches")

	conf.BindFlag(flags, "temperature", "input.temperature")
	conf.BindFlag(flags, "metric", "report.metric")
	conf.BindFlag(flags, "night-offset", "heatmap.nightoffset")
	conf.BindFlag(flags, "summary", "output.summary")
	conf.BindFlag(flags, "width", "output.width")
	conf.BindFlag(flags, "height", "output.height")
}
