package repository

import (
	"hospital-finder/internal/geo"
	"hospital-finder/internal/models"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/doug-martin/goqu/v9/exp"
)

var (
	hospitalTable = goqu.T("hospital")
	partTable     = goqu.T("hospital_part")
	timeTable     = goqu.T("hospital_time")
)

// Shape is the join layout picked for a filter request
type Shape int

const (
	ShapeLocationOnly Shape = iota
	ShapeHoursOnly
	ShapeSpecialtyOnly
	ShapeSpecialtyAndHours
)

func (s Shape) String() string {
	switch s {
	case ShapeLocationOnly:
		return "location"
	case ShapeHoursOnly:
		return "hours"
	case ShapeSpecialtyOnly:
		return "specialty"
	case ShapeSpecialtyAndHours:
		return "specialty+hours"
	}
	return "unknown"
}

// HourFlags selects opening-hour conditions. Each flag is 0 (ignore) or 1.
type HourFlags struct {
	Sat     int
	Sun     int
	Holiday int
	Night   int
}

// Any reports whether at least one hour condition was requested
func (f HourFlags) Any() bool {
	return f.Sat != 0 || f.Sun != 0 || f.Holiday != 0 || f.Night != 0
}

// Filter is the input of FilterHospitals. Part 0 means any specialty.
type Filter struct {
	Box   geo.BoundingBox
	Part  int
	Hours HourFlags
}

// Shape maps the active filter categories to a join layout
func (f Filter) Shape() Shape {
	switch {
	case f.Part == 0 && !f.Hours.Any():
		return ShapeLocationOnly
	case f.Part == 0:
		return ShapeHoursOnly
	case !f.Hours.Any():
		return ShapeSpecialtyOnly
	default:
		return ShapeSpecialtyAndHours
	}
}

// Query is a rendered statement ready for execution
type Query struct {
	SQL   string
	Args  []interface{}
	Shape Shape
}

// QueryBuilder composes hospital search statements. It keeps no per-call
// state and is safe for concurrent use.
type QueryBuilder struct {
	dialect goqu.DialectWrapper

	// legacySpecialtyFallthrough builds specialty-only requests with the
	// hours join as well, which drops hospitals without any hours record.
	legacySpecialtyFallthrough bool
}

// NewQueryBuilder creates a builder for the given goqu dialect ("mysql", "sqlite3")
func NewQueryBuilder(dialect string, legacySpecialtyFallthrough bool) *QueryBuilder {
	return &QueryBuilder{
		dialect:                    goqu.Dialect(dialect),
		legacySpecialtyFallthrough: legacySpecialtyFallthrough,
	}
}

// SearchByName selects hospitals inside box whose name matches keyword.
// A nil keyword disables the name match.
func (b *QueryBuilder) SearchByName(keyword *string, box geo.BoundingBox) (Query, error) {
	ds := b.dialect.From(hospitalTable).Select(hospitalTable.All()).Prepared(true)
	if cond := allOf(keywordSearch(keyword), locationBetween(box)); cond != nil {
		ds = ds.Where(cond)
	}

	sql, args, err := ds.ToSQL()
	if err != nil {
		return Query{}, err
	}
	return Query{SQL: sql, Args: args, Shape: ShapeLocationOnly}, nil
}

// FilterHospitals selects distinct hospitals inside f.Box matching the
// requested specialty and any of the requested opening-hour conditions.
func (b *QueryBuilder) FilterHospitals(f Filter) (Query, error) {
	shape := f.Shape()

	ds := b.dialect.From(hospitalTable).Select(hospitalTable.All()).Distinct().Prepared(true)
	switch shape {
	case ShapeHoursOnly:
		ds = ds.InnerJoin(timeTable, goqu.On(timeJoin(f.Hours)...))
	case ShapeSpecialtyOnly:
		ds = ds.InnerJoin(partTable, goqu.On(partJoin(f.Part)...))
		if b.legacySpecialtyFallthrough {
			ds = ds.InnerJoin(timeTable, goqu.On(timeJoin(f.Hours)...))
		}
	case ShapeSpecialtyAndHours:
		ds = ds.InnerJoin(partTable, goqu.On(partJoin(f.Part)...)).
			InnerJoin(timeTable, goqu.On(timeJoin(f.Hours)...))
	}
	if cond := locationBetween(f.Box); cond != nil {
		ds = ds.Where(cond)
	}

	sql, args, err := ds.ToSQL()
	if err != nil {
		return Query{}, err
	}
	return Query{SQL: sql, Args: args, Shape: shape}, nil
}

func partJoin(part int) []exp.Expression {
	return compact(
		partTable.Col("hospital_id").Eq(hospitalTable.Col("hospital_id")),
		partEq(part),
	)
}

func timeJoin(hours HourFlags) []exp.Expression {
	return compact(
		timeTable.Col("hospital_id").Eq(hospitalTable.Col("hospital_id")),
		anyOf(
			openSat(hours.Sat),
			openSun(hours.Sun),
			openHoliday(hours.Holiday),
			openNight(hours.Night),
		),
	)
}

// locationBetween limits coordinates to the box; nil when east is 0
func locationBetween(box geo.BoundingBox) exp.Expression {
	if !box.Bounded() {
		return nil
	}
	return goqu.And(
		hospitalTable.Col("hospital_x").Between(goqu.Range(box.West, box.East)),
		hospitalTable.Col("hospital_y").Between(goqu.Range(box.South, box.North)),
	)
}

// keywordSearch is a boolean-mode full-text prefix match on the name
func keywordSearch(keyword *string) exp.Expression {
	if keyword == nil {
		return nil
	}
	return goqu.L(
		"MATCH(?) AGAINST(? IN BOOLEAN MODE)",
		hospitalTable.Col("hospital_name"),
		"+"+*keyword+"*",
	).Gt(0)
}

func partEq(part int) exp.Expression {
	if part == 0 {
		return nil
	}
	return partTable.Col("hospital_part_name").Eq(part)
}

func openSat(sat int) exp.Expression {
	if sat == 0 {
		return nil
	}
	return timeTable.Col("hospital_time_sat").Neq(models.ClosedDay)
}

func openSun(sun int) exp.Expression {
	if sun == 0 {
		return nil
	}
	return timeTable.Col("hospital_time_sun").Neq(models.ClosedDay)
}

func openHoliday(holiday int) exp.Expression {
	if holiday == 0 {
		return nil
	}
	return timeTable.Col("hospital_time_holiday").Eq(1)
}

func openNight(night int) exp.Expression {
	if night == 0 {
		return nil
	}
	return timeTable.Col("hospital_time_mon_night").Eq(1)
}

// allOf ANDs the present clauses; nil when none is present
func allOf(clauses ...exp.Expression) exp.Expression {
	present := compact(clauses...)
	switch len(present) {
	case 0:
		return nil
	case 1:
		return present[0]
	}
	return goqu.And(present...)
}

// anyOf ORs the present clauses; nil when none is present
func anyOf(clauses ...exp.Expression) exp.Expression {
	present := compact(clauses...)
	switch len(present) {
	case 0:
		return nil
	case 1:
		return present[0]
	}
	return goqu.Or(present...)
}

func compact(clauses ...exp.Expression) []exp.Expression {
	present := make([]exp.Expression, 0, len(clauses))
	for _, c := range clauses {
		if c != nil {
			present = append(present, c)
		}
	}
	return present
}
