package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/freight-cli/internal/export"
	"github.com/sells-group/freight-cli/internal/model"
)

var (
	facContinent string
	facRegion    string
	facCountry   string
	facExclude   string
	facVerify    bool
)

var facilitiesCmd = &cobra.Command{
	Use:   "facilities",
	Short: "List the seaports and airports of a continent, region or country",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, err := initService(ctx, "query")
		if err != nil {
			return err
		}

		items, err := svc.ExtractFacilities(ctx, model.FacilityQuery{
			Continent:        facContinent,
			Region:           facRegion,
			Country:          facCountry,
			ExcludeCountries: facExclude,
		})
		if err != nil {
			return err
		}

		if facVerify {
			verifyAll(ctx, items, svc.VerifyFacility)
		}

		zap.L().Info("facilities extracted", zap.Int("count", len(items)))

		table := export.FacilitiesTable(items)
		return emit(cmd.OutOrStdout(), result{Items: items, Table: &table, Geo: items})
	},
}

// verifyAll verifies facilities one at a time and applies each update.
func verifyAll(ctx context.Context, items []model.Facility, verify func(context.Context, model.Facility) model.Verification) {
	verified := 0
	for i := range items {
		if ctx.Err() != nil {
			return
		}
		v := verify(ctx, items[i])
		v.Apply(&items[i].ItemMeta)
		if v.Verified {
			verified++
		}
	}
	zap.L().Info("facilities verified", zap.Int("verified", verified), zap.Int("total", len(items)))
}

func init() {
	facilitiesCmd.Flags().StringVar(&facContinent, "continent", "", "continent (Asia, Europe, Americas, Africa, Oceania)")
	facilitiesCmd.Flags().StringVar(&facRegion, "region", "", "region within the continent (empty: every region)")
	facilitiesCmd.Flags().StringVar(&facCountry, "country", "", "country within the region")
	facilitiesCmd.Flags().StringVar(&facExclude, "exclude", "", "comma-separated countries to leave out")
	facilitiesCmd.Flags().BoolVar(&facVerify, "verify", false, "ground every facility on a map after extraction")
	_ = facilitiesCmd.MarkFlagRequired("continent")
	rootCmd.AddCommand(facilitiesCmd)
}
