package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTursoDSN(t *testing.T) {
	assert.Equal(t, "libsql://sheet.turso.io", TursoDSN("libsql://sheet.turso.io", ""))
	assert.Equal(t, "libsql://sheet.turso.io?authToken=abc", TursoDSN("libsql://sheet.turso.io", "abc"))
}

func TestInitializeLocal(t *testing.T) {
	err := Initialize(Options{Path: t.TempDir() + "/test.db", Environment: "production"})
	assert.NoError(t, err)
	defer Close()

	type probe struct {
		ID   uint
		Name string
	}
	assert.NoError(t, AutoMigrate(&probe{}))
}

func TestAutoMigrateWithoutInit(t *testing.T) {
	old := DB
	DB = nil
	defer func() { DB = old }()

	assert.Error(t, AutoMigrate())
	assert.NoError(t, Close())
}
