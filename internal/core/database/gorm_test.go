package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	cases := []struct {
		name, in, user, pass, want string
	}{
		{"empty", "", "", "", ""},
		{"native dsn untouched", "u:p@tcp(db:3306)/homes?parseTime=true", "x", "y", "u:p@tcp(db:3306)/homes?parseTime=true"},
		{"url form", "mysql://u:p@db:3306/homes", "", "", "u:p@tcp(db:3306)/homes?charset=utf8mb4&parseTime=true"},
		{"jdbc prefix and override", "jdbc:mysql://u:p@db:3306/homes?useSSL=false", "root", "secret", "root:secret@tcp(db:3306)/homes?charset=utf8mb4&parseTime=true&tls=false"},
		{"jdbc params", "mysql://db:3306/homes?characterEncoding=utf8&useUnicode=true&serverTimezone=UTC", "u", "", "u@tcp(db:3306)/homes?charset=utf8&loc=UTC&parseTime=true"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeMySQLDSN(tc.in, tc.user, tc.pass))
		})
	}
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "u:****@tcp(db:3306)/x", maskDSN("u:pass@tcp(db:3306)/x"))
	assert.Equal(t, "u@tcp(db:3306)/x", maskDSN("u@tcp(db:3306)/x"))
	assert.Equal(t, "file.db", maskDSN("file.db"))
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewGorm_SQLite(t *testing.T) {
	db, err := NewGorm(Opts{Driver: "sqlite", DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1, LogLevel: "silent"})
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}
