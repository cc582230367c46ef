package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTokenShapes(t *testing.T) {
	assert.True(t, IsShortDate("11/14"))
	assert.True(t, IsShortDate("1/4"))
	assert.False(t, IsShortDate("2024/11/14"))

	assert.True(t, IsFullDate("2024/05/01"))
	assert.True(t, IsFullDate("2024/5/1"))
	assert.False(t, IsFullDate("2024-05-01"))

	assert.True(t, IsDateToken("11/14"))
	assert.True(t, IsDateToken("2024/11/14"))
	assert.False(t, IsDateToken("摩斯漢堡"))
}

func TestTimeShapes(t *testing.T) {
	assert.True(t, IsTime("09:15:00"))
	assert.False(t, IsTime("9:15"))

	assert.True(t, StartsWithTime("09:15:00\t提款"))
	assert.True(t, StartsWithTime("09:15:00 提款"))
	assert.True(t, StartsWithTime("09:15:00"))
	assert.False(t, StartsWithTime("09:15:001"))
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024/05/01", "2024/05/01"},
		{"2024/5/1", "2024/05/01"},
		{"2024-05-01", "2024/05/01"},
		{" 2024.05.01 ", "2024/05/01"},
		{"２０２４／０５／０１", "2024/05/01"},
		{"20240501", "2024/05/01"},
	}
	for _, tt := range tests {
		got, err := NormalizeDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := NormalizeDate("yesterday")
	assert.Error(t, err)
}

func TestExcelSerialToTime(t *testing.T) {
	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), ExcelSerialToTime(45413))
	assert.Equal(t, time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC), ExcelSerialToTime(2))

	withClock := ExcelSerialToTime(45413.5)
	assert.Equal(t, "2024/05/01 12:00:00", withClock.Format(DateLayoutSlash+" "+TimeLayout))
	assert.True(t, HasClock(withClock))
	assert.False(t, HasClock(ExcelSerialToTime(45413)))
}

func TestFoldWidth(t *testing.T) {
	assert.Equal(t, "11/14 150", FoldWidth("１１／１４ １５０"))
	assert.Equal(t, "摩斯漢堡", FoldWidth("摩斯漢堡"))
}
