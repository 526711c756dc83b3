package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/container"
	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

var providerFlag string

// runQuery builds a container, resolves the provider and prints the
// result of fn as indented JSON on stdout. Logs go to stderr.
func runQuery(cmd *cobra.Command, fn func(ctx context.Context, c *container.Container, p types.ProviderID) (any, error)) error {
	cfg, logger, err := bootstrap(os.Stderr)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	c, err := container.NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	provider, err := types.ParseProvider(providerFlag, c.DefaultProvider)
	if err != nil {
		return err
	}

	out, err := fn(ctx, c, provider)
	if err != nil {
		for _, n := range c.Inbox.Drain() {
			fmt.Fprintln(cmd.ErrOrStderr(), n.Message)
		}
		return err
	}
	return printJSON(cmd.OutOrStdout(), out)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newCountriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List every country with its ISO code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, func(ctx context.Context, c *container.Container, p types.ProviderID) (any, error) {
				return c.TravelService.ListCountries(ctx, p)
			})
		},
	}
}

func newStatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "states <country>",
		Short: "List the major states or regions of a country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, func(ctx context.Context, c *container.Container, p types.ProviderID) (any, error) {
				return c.TravelService.ListStates(ctx, args[0], p)
			})
		},
	}
}

func newCitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cities <country> <state>",
		Short: "List the top tourist cities of a state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, func(ctx context.Context, c *container.Container, p types.ProviderID) (any, error) {
				return c.TravelService.ListTopCities(ctx, args[1], args[0], p)
			})
		},
	}
}

func newCityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "city <name>",
		Short: "Show a city and its most famous spots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, func(ctx context.Context, c *container.Container, p types.ProviderID) (any, error) {
				return c.TravelService.GetDetailedCity(ctx, args[0], p)
			})
		},
	}
}

func newItineraryCmd() *cobra.Command {
	var (
		days  int
		start string
		spots []string
	)
	cmd := &cobra.Command{
		Use:   "itinerary <city>",
		Short: "Generate a day by day itinerary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := types.ItineraryRequest{City: args[0], Days: days, StartDate: start}
			for _, s := range spots {
				req.MustVisitSpots = append(req.MustVisitSpots, types.TouristSpot{Name: strings.TrimSpace(s)})
			}
			return runQuery(cmd, func(ctx context.Context, c *container.Container, p types.ProviderID) (any, error) {
				return c.TravelService.GenerateItinerary(ctx, req, p)
			})
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", 3, "number of days")
	cmd.Flags().StringVar(&start, "start", "", "start date as YYYY-MM-DD (default today)")
	cmd.Flags().StringSliceVar(&spots, "spot", nil, "must-visit spot, repeatable")
	return cmd
}

func newGuidesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guides <city>",
		Short: "Suggest local tour guides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, func(ctx context.Context, c *container.Container, p types.ProviderID) (any, error) {
				return c.TravelService.GenerateGuides(ctx, args[0], p)
			})
		},
	}
}

func newRideCmd() *cobra.Command {
	var (
		vehicle  string
		interval int
	)
	cmd := &cobra.Command{
		Use:   "ride <origin> <destination>",
		Short: "Plan a road trip with regular stops",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := types.RideRequest{
				Origin:         args[0],
				Destination:    args[1],
				VehicleType:    types.VehicleType(strings.ToLower(vehicle)),
				StopIntervalKm: interval,
			}
			return runQuery(cmd, func(ctx context.Context, c *container.Container, p types.ProviderID) (any, error) {
				return c.TravelService.PlanRide(ctx, req, p)
			})
		},
	}
	cmd.Flags().StringVar(&vehicle, "vehicle", string(types.VehicleCar), "bike or car")
	cmd.Flags().IntVar(&interval, "interval", 100, "target distance between stops in km")
	return cmd
}
