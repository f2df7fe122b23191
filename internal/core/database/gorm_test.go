package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	cases := []struct {
		name, in, user, pass, want string
	}{
		{"driver dsn untouched", "u:p@tcp(h:3306)/crud?parseTime=true", "", "", "u:p@tcp(h:3306)/crud?parseTime=true"},
		{"url form", "mysql://u:p@127.0.0.1:3306/crud?useSSL=false&serverTimezone=UTC", "", "",
			"u:p@tcp(127.0.0.1:3306)/crud?charset=utf8mb4&loc=UTC&parseTime=true&tls=false"},
		{"jdbc prefix", "jdbc:mysql://h:3306/crud?characterEncoding=latin1&useUnicode=true", "", "",
			"tcp(h:3306)/crud?charset=latin1&parseTime=true"},
		{"query creds with override", "mysql://h/crud?user=a&password=b", "root", "", "root:b@tcp(h)/crud?charset=utf8mb4&parseTime=true"},
		{"empty", "  ", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeMySQLDSN(tc.in, tc.user, tc.pass))
		})
	}
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "u:****@tcp(h)/d", maskDSN("u:secret@tcp(h)/d"))
	assert.Equal(t, "postgres://u:****@h/d", maskDSN("postgres://u:secret@h/d"))
	assert.Equal(t, "u@tcp(h)/d", maskDSN("u@tcp(h)/d"))
	assert.Equal(t, "crud.db", maskDSN("crud.db"))
}

func TestNewGormSQLite(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	db, err := NewGorm(Opts{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "t.db") + "?_pragma=foreign_keys(1)",
		MaxOpenConns: 1,
		LogLevel:     "silent",
		Logger:       zap.New(core),
	})
	require.NoError(t, err)
	defer func() { assert.NoError(t, Close(db)) }()

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestNewGormUnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}
