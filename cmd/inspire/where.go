package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"vamu/internal/config"
	"vamu/internal/maps"
	"vamu/internal/modules/inspiration"
	"vamu/internal/types"
)

type WhereCmd struct {
	What      string   `arg:"" help:"What the event is, e.g. \"Pizza night\" or \"Tapas in Madrid\"."`
	Near      string   `help:"Bias coordinates as lat,lng."`
	Radius    float64  `help:"Bias radius in meters (default from config)."`
	Max       int      `help:"Maximum suggestions (1-20)."`
	MinRating float64  `help:"Minimum rating (0-5)."`
	Price     []string `help:"Allowed price levels, e.g. moderate,expensive." sep:","`
	OpenNow   bool     `help:"Only venues open now."`
	Provider  string   `help:"Places backend: places_v1 or maps_legacy."`
}

func (w *WhereCmd) Run(ctx *Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if w.Provider != "" {
		cfg.Places.Provider = w.Provider
	}
	provider, err := maps.NewProvider(cfg.Places)
	if err != nil {
		return err
	}
	svc := inspiration.NewService(provider, inspiration.Options{
		Defaults: inspiration.QueryDefaults{
			MaxResults:   cfg.Search.DefaultMaxResults,
			RadiusMeters: cfg.Search.DefaultRadiusMeters,
			LanguageCode: cfg.Search.LanguageCode,
		},
		Timeout: cfg.Places.Timeout,
	})

	req, err := w.request()
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithTimeout(context.Background(), cfg.Places.Timeout+5*time.Second)
	defer cancel()
	list, err := svc.Suggest(runCtx, req)
	if err != nil {
		return err
	}

	if ctx.JSON {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tRATING\tPRICE\tDISTANCE\tADDRESS")
	for i, s := range list.Suggestions {
		rating := "-"
		if s.Rating != nil {
			rating = strconv.FormatFloat(*s.Rating, 'f', 1, 64)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, s.DisplayName, rating, s.PriceLevel, distanceLabel(req.Location, s.Location), s.Address)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "\n%d suggestion(s) for %q\n", list.TotalCount, list.Query)
	return nil
}

func (w *WhereCmd) request() (inspiration.SearchRequest, error) {
	req := inspiration.SearchRequest{What: w.What}
	if w.Near != "" {
		loc, err := parseLatLon(w.Near)
		if err != nil {
			return req, err
		}
		req.Location = &loc
	}
	if w.Radius != 0 {
		r := w.Radius
		req.RadiusMeters = &r
	}
	prefs := &inspiration.Preferences{MaxResults: w.Max, OpenNow: w.OpenNow}
	if w.MinRating > 0 {
		m := w.MinRating
		prefs.MinRating = &m
	}
	for _, label := range w.Price {
		tier, err := inspiration.ParsePriceTier(label)
		if err != nil {
			return req, err
		}
		prefs.PriceLevels = append(prefs.PriceLevels, tier)
	}
	req.Preferences = prefs
	return req, nil
}

func parseLatLon(v string) (types.LatLon, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 2 {
		return types.LatLon{}, fmt.Errorf("--near must be lat,lng")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return types.LatLon{}, fmt.Errorf("--near latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return types.LatLon{}, fmt.Errorf("--near longitude: %w", err)
	}
	loc := types.LatLon{Latitude: lat, Longitude: lng}
	return loc, loc.Validate()
}

// distanceLabel formats the distance from the --near point, or "-" without one.
func distanceLabel(from *types.LatLon, to types.LatLon) string {
	if from == nil {
		return "-"
	}
	d := from.DistanceMeters(to)
	if d < 1000 {
		return fmt.Sprintf("%.0f m", d)
	}
	return fmt.Sprintf("%.1f km", d/1000)
}
