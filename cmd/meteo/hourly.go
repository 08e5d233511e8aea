package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/meteo/internal/citycheck"
	"github.com/MrSnakeDoc/meteo/internal/forecast"
	"github.com/MrSnakeDoc/meteo/internal/logger"
	"github.com/MrSnakeDoc/meteo/internal/owm"
)

var (
	hourlyLang    string
	hourlyAPIKey  string
	hourlyBaseURL string
)

var hourlyCmd = &cobra.Command{
	Use:   "hourly <city>",
	Short: "Print the synthesized hourly forecast for a city",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHourly,
}

func init() {
	hourlyCmd.Flags().StringVar(&hourlyLang, "lang", "en", "language: en, ua, cs or ru")
	hourlyCmd.Flags().StringVar(&hourlyAPIKey, "api-key", os.Getenv("METEO_OWM_API_KEY"), "OpenWeatherMap API key")
	hourlyCmd.Flags().StringVar(&hourlyBaseURL, "base-url", owm.DefaultBaseURL, "OpenWeatherMap data API URL")
	rootCmd.AddCommand(hourlyCmd)
}

func runHourly(cmd *cobra.Command, args []string) error {
	city := strings.Join(args, " ")
	if v := citycheck.Validate(city); !v.Valid {
		return fmt.Errorf("%q rejected: %s", city, v.Reason)
	}

	client := owm.New(owm.Options{
		APIKey:     hourlyAPIKey,
		BaseURL:    hourlyBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logger.Nop(),
	})

	samples, place, err := client.Forecast(cmd.Context(), city, hourlyLang)
	if err != nil {
		return err
	}

	loc := place.Location(time.Local)
	ticks := forecast.SynthesizeHourly(samples, time.Now().In(loc))

	out := cmd.OutOrStdout()
	CyanBold.Fprintf(out, "%s, %s\n", place.Name, place.Country)
	for _, h := range ticks {
		Cyan.Fprintf(out, "  %s", h.Time.Format("15:04"))
		fmt.Fprintf(out, "  %4d°C  ", h.Temperature)
		Faint.Fprintln(out, h.Description)
	}
	return nil
}
