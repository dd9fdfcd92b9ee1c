package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pharmanear/m/domain"
	"pharmanear/m/internal/locator"
)

var nearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "List pharmacies near a point, with availability of a medicine",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		var req locator.SearchRequest
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
			lat, _ := cmd.Flags().GetFloat64("lat")
			lng, _ := cmd.Flags().GetFloat64("lng")
			req.Location = &domain.Location{Lat: lat, Lng: lng}
		}
		if cmd.Flags().Changed("radius") {
			radius, _ := cmd.Flags().GetFloat64("radius")
			req.RadiusKm = &radius
		}
		req.Medicine, _ = cmd.Flags().GetString("medicine")
		req.EmergencyOnly, _ = cmd.Flags().GetBool("emergency")

		resp, err := a.svc.Search(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printSearch(cmd.OutOrStdout(), resp)
	},
}

func printSearch(out io.Writer, resp locator.SearchResponse) error {
	if resp.Empty {
		fmt.Fprintf(out, "No pharmacies found within %v km. Try expanding search area.\n", resp.RadiusKm)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISTANCE\tSTATUS\tHOURS\tRATING\tPHONE\tSTOCK\tORDER")
	for _, c := range resp.Results {
		status := "closed"
		if c.Pharmacy.IsOpen {
			status = "open"
		}
		stock := "-"
		if c.StockUnits != nil {
			stock = fmt.Sprint(*c.StockUnits)
		}
		order := "no"
		if c.CanOrder {
			order = "yes"
		}
		fmt.Fprintf(w, "%s\t%.1f km\t%s\t%s - %s\t%.1f\t%s\t%s\t%s\n",
			c.Pharmacy.Name, c.DistanceKm, status, c.Pharmacy.OpenTime, c.Pharmacy.CloseTime,
			c.Pharmacy.Rating, c.Pharmacy.Phone, stock, order)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nFound %d pharmacies nearby.\n", len(resp.Results))
	if resp.Medicine != nil {
		s := resp.Summary
		fmt.Fprintf(out, "%s: %s (%d open with stock, %d with stock, %d units in %d pharmacies)\n",
			resp.Medicine.Name, badge(s.Classification), s.OpenAvailable, s.AnyAvailable, s.TotalStock, s.TotalInRadius)
	}
	return nil
}

func badge(c domain.Classification) string {
	switch c {
	case domain.ClassificationAvailable:
		return "AVAILABLE"
	case domain.ClassificationAvailableButClosed:
		return "AVAILABLE (STORES CLOSED)"
	case domain.ClassificationNotAvailable:
		return "NOT AVAILABLE"
	default:
		return "search a medicine"
	}
}

func init() {
	rootCmd.AddCommand(nearbyCmd)
	nearbyCmd.Flags().Float64("lat", 0, "Reference latitude (default from config)")
	nearbyCmd.Flags().Float64("lng", 0, "Reference longitude (default from config)")
	nearbyCmd.Flags().Float64("radius", 0, "Search radius in km (default from config)")
	nearbyCmd.Flags().StringP("medicine", "m", "", "Medicine to check availability for")
	nearbyCmd.Flags().BoolP("emergency", "e", false, "Only match emergency medicines")
}
