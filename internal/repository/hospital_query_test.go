package repository

import (
	"strings"
	"testing"

	"hospital-finder/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBox = geo.BoundingBox{East: 127.4, West: 127.2, South: 36.3, North: 36.4}

func boxArgs(box geo.BoundingBox) []interface{} {
	return []interface{}{box.West, box.East, box.South, box.North}
}

func TestFilter_Shape(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   Shape
	}{
		{"nothing selected", Filter{}, ShapeLocationOnly},
		{"saturday only", Filter{Hours: HourFlags{Sat: 1}}, ShapeHoursOnly},
		{"night only", Filter{Hours: HourFlags{Night: 1}}, ShapeHoursOnly},
		{"specialty only", Filter{Part: 13}, ShapeSpecialtyOnly},
		{"specialty and holiday", Filter{Part: 13, Hours: HourFlags{Holiday: 1}}, ShapeSpecialtyAndHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Shape())
		})
	}
}

func TestQueryBuilder_SearchByName(t *testing.T) {
	b := NewQueryBuilder("mysql", true)
	keyword := "seoul"

	t.Run("keyword and location", func(t *testing.T) {
		q, err := b.SearchByName(&keyword, testBox)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(q.SQL, "SELECT `hospital`.* FROM `hospital` WHERE"), q.SQL)
		assert.Contains(t, q.SQL, "MATCH(`hospital`.`hospital_name`) AGAINST(? IN BOOLEAN MODE) > ?")
		assert.Contains(t, q.SQL, "`hospital`.`hospital_x` BETWEEN ? AND ?")
		assert.Contains(t, q.SQL, "`hospital`.`hospital_y` BETWEEN ? AND ?")
		assert.NotContains(t, q.SQL, "DISTINCT")
		assert.NotContains(t, q.SQL, "JOIN")

		require.Len(t, q.Args, 6)
		assert.Equal(t, "+seoul*", q.Args[0])
		assert.Equal(t, boxArgs(testBox), q.Args[2:])
	})

	t.Run("nil keyword applies location only", func(t *testing.T) {
		q, err := b.SearchByName(nil, testBox)
		require.NoError(t, err)

		assert.NotContains(t, q.SQL, "MATCH")
		assert.Equal(t, boxArgs(testBox), q.Args)
	})

	t.Run("east of zero drops the location predicate", func(t *testing.T) {
		q, err := b.SearchByName(&keyword, geo.BoundingBox{West: 127.2, South: 36.3, North: 36.4})
		require.NoError(t, err)

		assert.NotContains(t, q.SQL, "BETWEEN")
		assert.Equal(t, []interface{}{"+seoul*"}, q.Args[:1])
		assert.Len(t, q.Args, 2)
	})

	t.Run("no filters at all", func(t *testing.T) {
		q, err := b.SearchByName(nil, geo.BoundingBox{})
		require.NoError(t, err)

		assert.Equal(t, "SELECT `hospital`.* FROM `hospital`", q.SQL)
		assert.Empty(t, q.Args)
	})
}

func TestQueryBuilder_FilterHospitals_LocationOnly(t *testing.T) {
	b := NewQueryBuilder("mysql", true)

	q, err := b.FilterHospitals(Filter{Box: testBox})
	require.NoError(t, err)

	assert.Equal(t, ShapeLocationOnly, q.Shape)
	assert.True(t, strings.HasPrefix(q.SQL, "SELECT DISTINCT `hospital`.* FROM `hospital` WHERE"), q.SQL)
	assert.NotContains(t, q.SQL, "JOIN")
	assert.Equal(t, boxArgs(testBox), q.Args)
}

func TestQueryBuilder_FilterHospitals_HoursOnly(t *testing.T) {
	b := NewQueryBuilder("mysql", true)

	q, err := b.FilterHospitals(Filter{Box: testBox, Hours: HourFlags{Sat: 1, Holiday: 1}})
	require.NoError(t, err)

	assert.Equal(t, ShapeHoursOnly, q.Shape)
	assert.Contains(t, q.SQL, "SELECT DISTINCT `hospital`.*")
	assert.Contains(t, q.SQL, "INNER JOIN `hospital_time` ON")
	assert.NotContains(t, q.SQL, "`hospital_part`")
	assert.Contains(t, q.SQL, "(`hospital_time`.`hospital_id` = `hospital`.`hospital_id`)")
	assert.Contains(t, q.SQL, "(`hospital_time`.`hospital_time_sat` != ?)")
	assert.Contains(t, q.SQL, "(`hospital_time`.`hospital_time_holiday` = ?)")
	assert.Contains(t, q.SQL, " OR ", "hour conditions are alternatives")
	assert.NotContains(t, q.SQL, "hospital_time_sun", "inactive flags add no predicate")
	assert.NotContains(t, q.SQL, "hospital_time_mon_night")

	assert.Equal(t, "null", q.Args[0])
	assert.Equal(t, boxArgs(testBox), q.Args[len(q.Args)-4:])
}

func TestQueryBuilder_FilterHospitals_SingleHourFlagHasNoOr(t *testing.T) {
	b := NewQueryBuilder("mysql", true)

	q, err := b.FilterHospitals(Filter{Hours: HourFlags{Night: 1}})
	require.NoError(t, err)

	assert.Contains(t, q.SQL, "(`hospital_time`.`hospital_time_mon_night` = ?)")
	assert.NotContains(t, q.SQL, " OR ")
	assert.NotContains(t, q.SQL, "WHERE")
}

func TestQueryBuilder_FilterHospitals_SpecialtyOnly(t *testing.T) {
	t.Run("legacy fallthrough keeps the hours join", func(t *testing.T) {
		q, err := NewQueryBuilder("mysql", true).FilterHospitals(Filter{Box: testBox, Part: 13})
		require.NoError(t, err)

		assert.Equal(t, ShapeSpecialtyOnly, q.Shape)
		assert.Contains(t, q.SQL, "INNER JOIN `hospital_part` ON")
		assert.Contains(t, q.SQL, "(`hospital_part`.`hospital_part_name` = ?)")
		assert.Contains(t, q.SQL, "INNER JOIN `hospital_time` ON (`hospital_time`.`hospital_id` = `hospital`.`hospital_id`)")
		assert.NotContains(t, q.SQL, "hospital_time_sat")
	})

	t.Run("specialty join only", func(t *testing.T) {
		q, err := NewQueryBuilder("mysql", false).FilterHospitals(Filter{Box: testBox, Part: 13})
		require.NoError(t, err)

		assert.Contains(t, q.SQL, "INNER JOIN `hospital_part` ON")
		assert.NotContains(t, q.SQL, "`hospital_time`")
		assert.Equal(t, boxArgs(testBox), q.Args[len(q.Args)-4:])
	})
}

func TestQueryBuilder_FilterHospitals_SpecialtyAndHours(t *testing.T) {
	b := NewQueryBuilder("mysql", false)

	q, err := b.FilterHospitals(Filter{Part: 7, Hours: HourFlags{Sat: 1, Sun: 1, Holiday: 1, Night: 1}})
	require.NoError(t, err)

	assert.Equal(t, ShapeSpecialtyAndHours, q.Shape)
	partAt := strings.Index(q.SQL, "INNER JOIN `hospital_part`")
	timeAt := strings.Index(q.SQL, "INNER JOIN `hospital_time`")
	require.NotEqual(t, -1, partAt)
	require.NotEqual(t, -1, timeAt)
	assert.Less(t, partAt, timeAt)
	assert.Equal(t, 3, strings.Count(q.SQL, " OR "))
	assert.NotContains(t, q.SQL, "WHERE", "east of zero drops the location predicate")
}

func TestQueryBuilder_SQLiteDialect(t *testing.T) {
	q, err := NewQueryBuilder("sqlite3", true).FilterHospitals(Filter{Box: testBox, Hours: HourFlags{Sun: 1}})
	require.NoError(t, err)

	assert.Contains(t, q.SQL, "`hospital_time`.`hospital_time_sun` != ?")
}

func TestComposition_SkipsAbsentClauses(t *testing.T) {
	assert.Nil(t, allOf(nil, nil))
	assert.Nil(t, anyOf())
	assert.Nil(t, anyOf(openSat(0), openSun(0), openHoliday(0), openNight(0)))
	assert.Nil(t, partEq(0))
	assert.Nil(t, keywordSearch(nil))
	assert.Nil(t, locationBetween(geo.BoundingBox{West: 1, South: 1, North: 2}))

	only := openSun(1)
	assert.Equal(t, only, anyOf(nil, only, nil), "a single clause is used as is")
	assert.Len(t, compact(nil, only, nil, openSat(1)), 2)
}
