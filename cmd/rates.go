package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/freight-cli/internal/export"
	"github.com/sells-group/freight-cli/internal/model"
)

var (
	seaOrigin     string
	seaCommodity  string
	seaContainer  string
	seaDate       string
	seaDestRegion string
	seaDestPort   string

	airOrigin      string
	airCommodity   string
	airWeightBreak string
	airDate        string
	airDestRegion  string
	airDestAirport string
	airVerify      bool
)

var seaRatesCmd = &cobra.Command{
	Use:   "sea-rates",
	Short: "Build an export ocean-freight rate sheet from an origin port",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, err := initService(ctx, "query")
		if err != nil {
			return err
		}

		items, err := svc.FetchSeaRates(ctx, model.SeaRateQuery{
			OriginPort:        seaOrigin,
			Commodity:         model.Commodity(seaCommodity),
			ContainerSize:     model.ContainerSize(seaContainer),
			TargetDate:        dateOrToday(seaDate),
			DestinationRegion: model.RegionDestination(seaDestRegion),
			DestinationPort:   seaDestPort,
		})
		if err != nil {
			return err
		}

		zap.L().Info("sea rates fetched", zap.Int("count", len(items)))

		table := export.SeaRatesTable(items)
		return emit(cmd.OutOrStdout(), result{Items: items, Table: &table})
	},
}

var airRatesCmd = &cobra.Command{
	Use:   "air-rates",
	Short: "Build an export air-freight rate sheet from an origin airport",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, err := initService(ctx, "query")
		if err != nil {
			return err
		}

		items, err := svc.FetchAirRates(ctx, model.AirRateQuery{
			OriginAirport:      airOrigin,
			Commodity:          model.Commodity(airCommodity),
			WeightBreak:        model.WeightBreak(airWeightBreak),
			TargetDate:         dateOrToday(airDate),
			DestinationRegion:  model.RegionDestination(airDestRegion),
			DestinationAirport: airDestAirport,
		})
		if err != nil {
			return err
		}

		if airVerify {
			for i := range items {
				if ctx.Err() != nil {
					break
				}
				v := svc.VerifyAirRate(ctx, items[i])
				v.Apply(&items[i].ItemMeta)
			}
		}

		zap.L().Info("air rates fetched", zap.Int("count", len(items)))

		table := export.AirRatesTable(items)
		return emit(cmd.OutOrStdout(), result{Items: items, Table: &table})
	},
}

func dateOrToday(s string) string {
	if s != "" {
		return s
	}
	return time.Now().Format(model.DateLayout)
}

func init() {
	seaRatesCmd.Flags().StringVar(&seaOrigin, "origin", "", "origin port, e.g. \"Tanjung Priok, Jakarta\"")
	seaRatesCmd.Flags().StringVar(&seaCommodity, "commodity", string(model.CommodityGeneral), "commodity name or code (DG, VAL, ...)")
	seaRatesCmd.Flags().StringVar(&seaContainer, "container", string(model.Container20GP), "container size or code (20GP, 40HC, LCL, ...)")
	seaRatesCmd.Flags().StringVar(&seaDate, "date", "", "reference date YYYY-MM-DD (default today)")
	seaRatesCmd.Flags().StringVar(&seaDestRegion, "dest-region", "ALL", "destination region or ALL")
	seaRatesCmd.Flags().StringVar(&seaDestPort, "dest-port", "", "single destination port")
	_ = seaRatesCmd.MarkFlagRequired("origin")

	airRatesCmd.Flags().StringVar(&airOrigin, "origin", "", "origin airport, e.g. \"CGK - Soekarno-Hatta\"")
	airRatesCmd.Flags().StringVar(&airCommodity, "commodity", string(model.CommodityGeneral), "commodity name or code")
	airRatesCmd.Flags().StringVar(&airWeightBreak, "weight-break", string(model.WeightP100), "weight break, e.g. \"+100 Kg\" or min")
	airRatesCmd.Flags().StringVar(&airDate, "date", "", "reference date YYYY-MM-DD (default today)")
	airRatesCmd.Flags().StringVar(&airDestRegion, "dest-region", "ALL", "destination region or ALL")
	airRatesCmd.Flags().StringVar(&airDestAirport, "dest-airport", "", "single destination airport")
	airRatesCmd.Flags().BoolVar(&airVerify, "verify", false, "ground every destination airport on a map")
	_ = airRatesCmd.MarkFlagRequired("origin")

	rootCmd.AddCommand(seaRatesCmd, airRatesCmd)
}
