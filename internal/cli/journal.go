package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/moodmap/moodmap/internal/app/aggregator"
	"github.com/moodmap/moodmap/internal/domain"
)

// ─── Journal Commands ───────────────────────────────────────────────────────
// Each command opens the configured store directly; no server is needed.

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(analyzeCmd)

	addCmd.Flags().String("lat", "", "Latitude in degrees (-90..90)")
	addCmd.Flags().String("lon", "", "Longitude in degrees (-180..180)")
	_ = addCmd.MarkFlagRequired("lat")
	_ = addCmd.MarkFlagRequired("lon")

	listCmd.Flags().Bool("json", false, "Print records as JSON")
	summaryCmd.Flags().Bool("json", false, "Print the summary as JSON")
}

// ─── add ────────────────────────────────────────────────────────────────────

var addCmd = &cobra.Command{
	Use:   "add --lat LAT --lon LON TEXT...",
	Short: "Record how you feel at a place",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	latText, _ := cmd.Flags().GetString("lat")
	lonText, _ := cmd.Flags().GetString("lon")
	at, err := parseCoordinate(latText, lonText)
	if err != nil {
		return err
	}

	d, err := openDaemon(cmd, "text")
	if err != nil {
		return err
	}
	defer d.Close()

	r, err := d.Journal.AddRecord(cmd.Context(), at, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  (intensity %.2f)\n", r.ID, r.Label(), r.Intensity)
	return nil
}

// parseCoordinate parses the two text fields the user typed.
func parseCoordinate(latText, lonText string) (domain.Coordinate, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: latitude %q", domain.ErrInvalidCoordinate, latText)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonText), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: longitude %q", domain.ErrInvalidCoordinate, lonText)
	}
	at := domain.Coordinate{Latitude: lat, Longitude: lon}
	return at, at.Validate()
}

// ─── list ───────────────────────────────────────────────────────────────────

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal records in the order they were added",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	d, err := openDaemon(cmd, "text")
	if err != nil {
		return err
	}
	defer d.Close()

	records := d.Journal.Records()
	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if records == nil {
			records = []domain.Record{}
		}
		return writeIndented(out, records)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No records yet. Add one with: moodmap add --lat LAT --lon LON TEXT")
		return nil
	}
	printRecords(out, records)
	return nil
}

func printRecords(out io.Writer, records []domain.Record) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMOOD\tWHERE\tWHEN\tNOTE")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Label(), r.Coordinate, r.CreatedAt.Local().Format(time.DateTime), truncate(r.Note, 40))
	}
	w.Flush()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// ─── delete ─────────────────────────────────────────────────────────────────

var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a record",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	d, err := openDaemon(cmd, "text")
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Journal.DeleteRecord(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

// ─── summary ────────────────────────────────────────────────────────────────

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show mood counts and the most recent records",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

type summaryJSON struct {
	Total         int                `json:"total"`
	Breakdown     []aggregator.Share `json:"breakdown"`
	MostFrequent  domain.Category    `json:"most_frequent"`
	Recent        []domain.Record    `json:"recent"`
	HasEnoughData bool               `json:"has_enough_data"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	d, err := openDaemon(cmd, "text")
	if err != nil {
		return err
	}
	defer d.Close()

	s := d.Journal.Summary()
	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeIndented(out, summaryJSON{
			Total:         s.Total,
			Breakdown:     s.Breakdown(),
			MostFrequent:  s.MostFrequent,
			Recent:        s.Recent,
			HasEnoughData: s.HasEnoughData(),
		})
	}

	if s.Total == 0 {
		fmt.Fprintln(out, "No records yet.")
		return nil
	}

	fmt.Fprintf(out, "Records: %d\n", s.Total)
	fmt.Fprintf(out, "Most frequent: %s\n\n", s.MostFrequent.Label())

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, share := range s.Breakdown() {
		fmt.Fprintf(w, "%s\t%d\t%5.1f%%\n", share.Category.Label(), share.Count, share.Percent)
	}
	w.Flush()

	if !s.HasEnoughData() {
		fmt.Fprintln(out, "\nAdd records with more than one mood to see a full breakdown.")
	}

	fmt.Fprintln(out, "\nRecent:")
	printRecords(out, s.Recent)
	return nil
}

// ─── analyze ────────────────────────────────────────────────────────────────

var analyzeCmd = &cobra.Command{
	Use:   "analyze TEXT...",
	Short: "Classify text without recording it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	d, err := openDaemon(cmd, "text")
	if err != nil {
		return err
	}
	defer d.Close()

	a := d.Journal.Analyze(cmd.Context(), strings.Join(args, " "))
	out := cmd.OutOrStdout()
	if !a.Scored {
		fmt.Fprintf(out, "%s  (no sentiment signal)\n", a.Category.Label())
		return nil
	}
	fmt.Fprintf(out, "%s  score %+.3f  intensity %.2f\n", a.Category.Label(), a.Score, a.Intensity)
	return nil
}

func writeIndented(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
