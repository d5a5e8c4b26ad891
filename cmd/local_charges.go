package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/freight-cli/internal/export"
	"github.com/sells-group/freight-cli/internal/model"
)

var (
	lcMode      string
	lcOrigin    string
	lcCommodity string
	lcDate      string
)

var localChargesCmd = &cobra.Command{
	Use:   "local-charges",
	Short: "Estimate origin-side handling charges at a port or airport",
	Long: "Estimates THC, handling, documentation and related local charges. Pass an origin containing " +
		"\"All Major Ports\" or \"All Major Airports\" to cover every major Indonesian facility.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, err := initService(ctx, "query")
		if err != nil {
			return err
		}

		q := model.LocalChargesQuery{
			Date:           dateOrToday(lcDate),
			Commodity:      model.Commodity(lcCommodity),
			TransportMode:  model.TransportType(lcMode),
			OriginLocation: lcOrigin,
		}
		items, err := svc.AnalyzeLocalCharges(ctx, q)
		if err != nil {
			return err
		}

		zap.L().Info("local charges analyzed", zap.Int("count", len(items)))

		mode, _ := model.ParseTransportType(lcMode)
		table := export.LocalChargesTable(items, mode)
		return emit(cmd.OutOrStdout(), result{Items: items, Table: &table})
	},
}

func init() {
	localChargesCmd.Flags().StringVar(&lcMode, "mode", string(model.TransportPort), "transport mode: Port or Airport")
	localChargesCmd.Flags().StringVar(&lcOrigin, "origin", "", "origin facility")
	localChargesCmd.Flags().StringVar(&lcCommodity, "commodity", string(model.CommodityGeneral), "commodity name or code")
	localChargesCmd.Flags().StringVar(&lcDate, "date", "", "reference date YYYY-MM-DD (default today)")
	_ = localChargesCmd.MarkFlagRequired("origin")
	rootCmd.AddCommand(localChargesCmd)
}
