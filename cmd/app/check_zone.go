package main

import (
	"fmt"

	"printdelivery/internal/core/application/usecases/queries"
	"printdelivery/internal/core/domain/model/kernel"

	"github.com/spf13/cobra"
)

func checkZoneCmd() *cobra.Command {
	var lat, lng float64

	cmd := &cobra.Command{
		Use:   "check-zone",
		Short: "Check whether a point can be delivered to, and at what fee",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, domain, err := loadDomain()
			if err != nil {
				return err
			}

			point, err := kernel.NewGeoPoint(lat, lng)
			if err != nil {
				return err
			}
			query, err := queries.NewValidateDeliveryQuery(point)
			if err != nil {
				return err
			}
			v, err := queries.NewValidateDeliveryQueryHandler(domain.Validator).Handle(cmd.Context(), query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !v.Valid {
				fmt.Fprintf(out, "Rejected (%s): %s\n", v.Reason, v.Message)
				fmt.Fprintf(out, "Distance:  %.2f km\n", v.DistanceKm)
				return nil
			}
			fmt.Fprintf(out, "Deliverable, zone %s\n", v.ZoneLabel)
			fmt.Fprintf(out, "Distance:  %.2f km\n", v.DistanceKm)
			fmt.Fprintf(out, "Fee:       %s\n", v.Fee)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}
