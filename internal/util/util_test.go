package util

import (
	"database/sql"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULID(t *testing.T) {
	a := NewULID()
	b := NewULID()

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	_, err := ulid.Parse(a)
	require.NoError(t, err)
}

func TestNullHelpers(t *testing.T) {
	assert.False(t, StringToNullString("").Valid)
	assert.Equal(t, sql.NullString{String: "x", Valid: true}, StringToNullString("x"))

	assert.False(t, TimeToNullTime(time.Time{}).Valid)
	now := time.Now()
	assert.True(t, TimeToNullTime(now).Valid)

	assert.Nil(t, NullTimeToPtr(sql.NullTime{}))
	ptr := NullTimeToPtr(sql.NullTime{Time: now, Valid: true})
	require.NotNil(t, ptr)
	assert.True(t, now.Equal(*ptr))
	assert.Equal(t, sql.NullTime{Time: now, Valid: true}, PtrToNullTime(&now))
	assert.False(t, PtrToNullTime(nil).Valid)

	assert.Nil(t, NullInt64ToIntPtr(sql.NullInt64{}))
	v := 640
	assert.Equal(t, &v, NullInt64ToIntPtr(sql.NullInt64{Int64: 640, Valid: true}))
	assert.Equal(t, sql.NullInt64{Int64: 640, Valid: true}, IntPtrToNullInt64(&v))
	assert.False(t, IntPtrToNullInt64(nil).Valid)
}
