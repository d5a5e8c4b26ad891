package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/freight-cli/internal/export"
	"github.com/sells-group/freight-cli/internal/model"
)

var (
	verName    string
	verCode    string
	verCity    string
	verCountry string
	verAirport bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Ground a facility or destination airport on a map",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svc, err := initService(ctx, "query")
		if err != nil {
			return err
		}

		var v model.Verification
		if verAirport {
			v = svc.VerifyAirRate(ctx, model.AirRate{DestinationAirport: verName, Country: verCountry})
		} else {
			v = svc.VerifyFacility(ctx, model.Facility{Name: verName, Code: verCode, City: verCity, Country: verCountry})
		}

		return export.WriteJSON(cmd.OutOrStdout(), v)
	},
}

func init() {
	verifyCmd.Flags().StringVar(&verName, "name", "", "facility or airport name")
	verifyCmd.Flags().StringVar(&verCode, "code", "", "UN/LOCODE or IATA code")
	verifyCmd.Flags().StringVar(&verCity, "city", "", "city")
	verifyCmd.Flags().StringVar(&verCountry, "country", "", "country")
	verifyCmd.Flags().BoolVar(&verAirport, "air-rate", false, "verify as an air-rate destination airport")
	_ = verifyCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(verifyCmd)
}
