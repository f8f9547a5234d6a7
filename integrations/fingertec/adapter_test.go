package fingertec

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDirectionMapResolve(t *testing.T) {
	defaults := NewDirectionMap(nil, nil)

	tests := []struct {
		name     string
		m        DirectionMap
		code     string
		expected Direction
	}{
		{
			name:     "builtin IN",
			m:        defaults,
			code:     "IN",
			expected: DirectionIn,
		},
		{
			name:     "builtin OUT",
			m:        defaults,
			code:     "OUT",
			expected: DirectionOut,
		},
		{
			name:     "builtin numeric in",
			m:        defaults,
			code:     "0",
			expected: DirectionIn,
		},
		{
			name:     "builtin numeric out",
			m:        defaults,
			code:     "1",
			expected: DirectionOut,
		},
		{
			name:     "case insensitive with whitespace",
			m:        defaults,
			code:     "  out ",
			expected: DirectionOut,
		},
		{
			name:     "unmatched code defaults to IN",
			m:        defaults,
			code:     "X",
			expected: DirectionIn,
		},
		{
			name:     "empty code defaults to IN",
			m:        defaults,
			code:     "",
			expected: DirectionIn,
		},
		{
			name:     "configured token maps to OUT",
			m:        NewDirectionMap([]string{"ENTRY"}, []string{"EXIT"}),
			code:     "exit",
			expected: DirectionOut,
		},
		{
			name:     "configured set wins over builtin fallback",
			m:        NewDirectionMap([]string{"1"}, nil),
			code:     "1",
			expected: DirectionIn,
		},
		{
			name:     "token outside configured set still falls back",
			m:        NewDirectionMap([]string{"ENTRY"}, []string{"EXIT"}),
			code:     "O",
			expected: DirectionOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.m.Resolve(tt.code))
		})
	}
}

func TestNewAdapterSelectsVariant(t *testing.T) {
	sdk := NewAdapter(&Config{Mode: "sdk", Host: "10.0.0.5", Port: 4370})
	assert.IsType(t, &SDKAdapter{}, sdk)

	db := NewAdapter(&Config{Mode: "db"})
	assert.IsType(t, &DBAdapter{}, db)

	// db is the default mode
	def := NewAdapter(&Config{})
	assert.IsType(t, &DBAdapter{}, def)
}

func TestSDKAdapterConnectUnconfigured(t *testing.T) {
	a := NewSDKAdapter("", 0)
	err := a.Connect()
	assert.True(t, errors.Is(err, ErrConnection))

	_, err = a.FetchSince(time.Now())
	assert.True(t, errors.Is(err, ErrConnection))
}

func TestSDKAdapterConnectConfigured(t *testing.T) {
	a := NewSDKAdapter("10.0.0.5", 4370)
	assert.NoError(t, a.Connect())

	events, err := a.FetchSince(time.Now())
	assert.NoError(t, err)
	assert.Empty(t, events)

	assert.NoError(t, a.Close())
	_, err = a.FetchSince(time.Now())
	assert.True(t, errors.Is(err, ErrConnection), "a closed adapter must not serve fetches")
}

func TestDBAdapterConnectWithoutURL(t *testing.T) {
	a := NewDBAdapter(&Config{Mode: "db"})
	assert.True(t, errors.Is(a.Connect(), ErrConnection))
}

func TestDBAdapterFetchWithoutConnect(t *testing.T) {
	a := NewDBAdapter(&Config{Mode: "db", DBURL: "user:pass@tcp(localhost:3306)/punches"})
	_, err := a.FetchSince(time.Now())
	assert.True(t, errors.Is(err, ErrConnection))
}

func TestDBAdapterCloseWithoutConnect(t *testing.T) {
	a := NewDBAdapter(&Config{Mode: "db"})
	assert.NoError(t, a.Close())
}

func TestDBAdapterBuildQuery(t *testing.T) {
	a := NewDBAdapter(&Config{
		Table:           "att_logs",
		EmployeeColumn:  "badge_no",
		TimeColumn:      "punch_time",
		DirectionColumn: "io_mode",
	})
	assert.Equal(t,
		"SELECT `badge_no`, `punch_time`, `io_mode` FROM `att_logs` WHERE `punch_time` > @since ORDER BY `punch_time` ASC",
		a.buildQuery())

	// direction column is optional
	a = NewDBAdapter(&Config{Table: "att_logs", EmployeeColumn: "badge_no", TimeColumn: "punch_time"})
	assert.Equal(t,
		"SELECT `badge_no`, `punch_time`, '' FROM `att_logs` WHERE `punch_time` > @since ORDER BY `punch_time` ASC",
		a.buildQuery())

	// incomplete configuration yields no query
	a = NewDBAdapter(&Config{Table: "att_logs"})
	assert.Equal(t, "", a.buildQuery())
}

func TestCoerceTime(t *testing.T) {
	want := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	got, ok := coerceTime(want)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	got, ok = coerceTime([]byte("2024-01-01 08:00:00"))
	assert.True(t, ok)
	assert.True(t, want.Equal(got))

	got, ok = coerceTime("2024-01-01T08:00:00Z")
	assert.True(t, ok)
	assert.True(t, want.Equal(got))

	_, ok = coerceTime("not a time")
	assert.False(t, ok)

	_, ok = coerceTime(nil)
	assert.False(t, ok)
}

func TestCoerceString(t *testing.T) {
	assert.Equal(t, "EMP-001", coerceString("EMP-001"))
	assert.Equal(t, "EMP-001", coerceString([]byte("EMP-001")))
	assert.Equal(t, "42", coerceString(int64(42)))
	assert.Equal(t, "", coerceString(nil))
}
