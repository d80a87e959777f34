package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "start_time").
		From("schedules").
		Where(squirrel.Eq{"professional_id": 7, "available": true}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, start_time FROM schedules WHERE available = $1 AND professional_id = $2", query)
	assert.Equal(t, []interface{}{true, 7}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("bookings").
		Set("status", "cancelled").
		Where(squirrel.Eq{"booking_code": "BC-20250106-ABCDEF"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE bookings SET status = $1 WHERE booking_code = $2", query)
	assert.Len(t, args, 2)
}
