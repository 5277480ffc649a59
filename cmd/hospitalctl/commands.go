package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"hospital-finder/internal/config"
	"hospital-finder/internal/database"
	"hospital-finder/internal/geo"
	"hospital-finder/internal/repository"
	"hospital-finder/internal/service"

	"github.com/spf13/cobra"
)

type searchFlags struct {
	box     geo.BoundingBox
	word    string
	part    int
	sat     int
	sun     int
	holiday int
	night   int
}

func (f *searchFlags) bindBox(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&f.box.East, "east", "e", 0, "east edge (0 disables the location filter)")
	cmd.Flags().Float64VarP(&f.box.West, "west", "w", 0, "west edge")
	cmd.Flags().Float64VarP(&f.box.South, "south", "s", 0, "south edge")
	cmd.Flags().Float64VarP(&f.box.North, "north", "n", 0, "north edge")
}

func (f *searchFlags) bindFilters(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.part, "part", 0, "specialty code (0 for any)")
	cmd.Flags().IntVar(&f.sat, "sat", 0, "open on Saturday (0 or 1)")
	cmd.Flags().IntVar(&f.sun, "sun", 0, "open on Sunday (0 or 1)")
	cmd.Flags().IntVar(&f.holiday, "holiday", 0, "open on holidays (0 or 1)")
	cmd.Flags().IntVar(&f.night, "night", 0, "night hours (0 or 1)")
}

func (f *searchFlags) filter() (repository.Filter, error) {
	for name, v := range map[string]int{"sat": f.sat, "sun": f.sun, "holiday": f.holiday, "night": f.night} {
		if v != 0 && v != 1 {
			return repository.Filter{}, fmt.Errorf("--%s must be 0 or 1, got %d", name, v)
		}
	}
	if f.part < 0 {
		return repository.Filter{}, fmt.Errorf("--part must not be negative, got %d", f.part)
	}
	return repository.Filter{
		Box:  f.box,
		Part: f.part,
		Hours: repository.HourFlags{
			Sat:     f.sat,
			Sun:     f.sun,
			Holiday: f.holiday,
			Night:   f.night,
		},
	}, nil
}

func newService(cfg *config.Config) (*service.HospitalService, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	queries := repository.NewQueryBuilder(cfg.Query.Dialect, cfg.Query.LegacySpecialtyFallthrough)
	return service.NewHospitalService(repository.NewHospitalRepo(db, queries)), nil
}

func newSearchCommand(cfg *config.Config) *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find hospitals by name inside a bounding box",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cfg)
			if err != nil {
				return err
			}
			hospitals, err := svc.SearchByName(cmd.Context(), f.word, f.box)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), hospitals)
		},
	}

	f.bindBox(cmd)
	cmd.Flags().StringVar(&f.word, "word", "", "name keyword (prefix match)")

	return cmd
}

func newFilterCommand(cfg *config.Config) *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Find hospitals by specialty and opening hours inside a bounding box",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := f.filter()
			if err != nil {
				return err
			}
			svc, err := newService(cfg)
			if err != nil {
				return err
			}
			hospitals, err := svc.FilterHospitals(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("filter failed: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), hospitals)
		},
	}

	f.bindBox(cmd)
	f.bindFilters(cmd)

	return cmd
}

func newDetailCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "detail <hospital-id>",
		Short: "Show a hospital with its specialties and opening hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid hospital id %q", args[0])
			}
			svc, err := newService(cfg)
			if err != nil {
				return err
			}
			hospital, err := svc.GetHospitalDetail(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), hospital)
		},
	}
}

// newSQLCommand prints statements without connecting to the database
func newSQLCommand(cfg *config.Config) *cobra.Command {
	var dialect string

	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Print the SQL a search would run",
	}
	cmd.PersistentFlags().StringVar(&dialect, "dialect", cfg.Query.Dialect, "SQL dialect (mysql, sqlite3)")

	builder := func() *repository.QueryBuilder {
		return repository.NewQueryBuilder(dialect, cfg.Query.LegacySpecialtyFallthrough)
	}

	var sf searchFlags
	search := &cobra.Command{
		Use:   "search",
		Short: "Print the name search statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			var word *string
			if cmd.Flags().Changed("word") {
				word = &sf.word
			}
			q, err := builder().SearchByName(word, sf.box)
			if err != nil {
				return err
			}
			return printQuery(cmd.OutOrStdout(), q)
		},
	}
	sf.bindBox(search)
	search.Flags().StringVar(&sf.word, "word", "", "name keyword (prefix match)")

	var ff searchFlags
	filter := &cobra.Command{
		Use:   "filter",
		Short: "Print the filter statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ff.filter()
			if err != nil {
				return err
			}
			q, err := builder().FilterHospitals(f)
			if err != nil {
				return err
			}
			return printQuery(cmd.OutOrStdout(), q)
		},
	}
	ff.bindBox(filter)
	ff.bindFilters(filter)

	cmd.AddCommand(search, filter)
	return cmd
}

func printQuery(w io.Writer, q repository.Query) error {
	_, err := fmt.Fprintf(w, "-- shape: %s\n%s;\n-- args: %v\n", q.Shape, q.SQL, q.Args)
	return err
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
