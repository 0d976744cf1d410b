package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDSource_StrictlyIncreasing(t *testing.T) {
	frozen := time.UnixMilli(1_700_000_000_000)
	ids := NewIDSourceWithClock(func() time.Time { return frozen })

	a := ids.Next()
	b := ids.Next()
	c := ids.Next()
	assert.Equal(t, EntryID(1_700_000_000_000), a)
	assert.Equal(t, a+1, b)
	assert.Equal(t, b+1, c)
}

func TestIDSource_ObserveSkipsLoadedIDs(t *testing.T) {
	ids := NewIDSourceWithClock(func() time.Time { return time.UnixMilli(100) })
	ids.Observe(500)
	ids.Observe(200)
	assert.Equal(t, EntryID(501), ids.Next())
}

func TestMonthBefore(t *testing.T) {
	assert.True(t, MonthBefore("01/2020", "02/2020"))
	assert.True(t, MonthBefore("12/2019", "01/2020"))
	assert.False(t, MonthBefore("06/2020", "06/2020"))
	assert.False(t, MonthBefore("07/2020", "06/2020"))
	assert.False(t, MonthBefore("13/2020", "06/2021"))

	m, y, ok := ParseMonth("03/2024")
	require.True(t, ok)
	assert.Equal(t, 3, m)
	assert.Equal(t, 2024, y)
	_, _, ok = ParseMonth("3/2024")
	assert.False(t, ok)
}

func TestEntrySet_CurrentClearsEndDate(t *testing.T) {
	e := Experience{ID: 1}
	require.NoError(t, e.Set("end_date", "05/2023"))
	assert.Equal(t, "05/2023", e.EndDate)

	require.NoError(t, e.Set("is_current", true))
	assert.True(t, e.IsCurrent)
	assert.Empty(t, e.EndDate)

	require.NoError(t, e.Set("end_date", "06/2023"))
	assert.Empty(t, e.EndDate, "end date is ignored while current")

	p := Project{}
	require.NoError(t, p.Set("end_date", "01/2022"))
	require.NoError(t, p.Set("is_ongoing", "true"))
	assert.Empty(t, p.EndDate)
}

func TestEntrySet_Errors(t *testing.T) {
	var s Skill
	assert.ErrorIs(t, s.Set("colour", "red"), ErrUnknownField)
	assert.ErrorIs(t, s.Set("name", 42), ErrFieldType)

	var e Education
	assert.ErrorIs(t, e.Set("is_current", "maybe"), ErrFieldType)
}

func TestProjectTechnologies_SetSemantics(t *testing.T) {
	var p Project
	require.NoError(t, p.Set("technologies", []any{"Go", " go ", "React", "", "GO"}))
	assert.Equal(t, []string{"Go", "React"}, p.Technologies)
}

func TestClone_IsDeep(t *testing.T) {
	doc := NewCVDocument()
	doc.Experience = []Experience{{ID: 1, Description: []string{"Led a team of five engineers"}}}
	doc.Projects = []Project{{ID: 2, Technologies: []string{"Go"}}}

	cp := doc.Clone()
	cp.Experience[0].Description[0] = "changed"
	cp.Projects[0].Technologies[0] = "Rust"
	cp.Experience = append(cp.Experience, Experience{ID: 3})

	assert.Equal(t, "Led a team of five engineers", doc.Experience[0].Description[0])
	assert.Equal(t, "Go", doc.Projects[0].Technologies[0])
	assert.Len(t, doc.Experience, 1)
}

func TestPersonalInfo_IsEmpty(t *testing.T) {
	var p PersonalInfo
	assert.True(t, p.IsEmpty())
	require.NoError(t, p.Set("location", "  "))
	assert.True(t, p.IsEmpty())
	require.NoError(t, p.Set("email", "a@b.co"))
	assert.False(t, p.IsEmpty())

	v, ok := p.Field("email")
	assert.True(t, ok)
	assert.Equal(t, "a@b.co", v)
}
