package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bantalo/reportcard/core"
)

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		db      string
		kv      string
		wantErr string
		wantDB  bool
	}{
		{name: "memory", db: "memory", kv: "memory"},
		{name: "defaults", db: "", kv: ""},
		{name: "sqlite and sql kv", db: "sqlite", kv: "sql", wantDB: true},
		{name: "memory and redis", db: "memory", kv: "redis"},
		{name: "sql kv without database", db: "memory", kv: "sql", wantErr: "kv.engine sql needs a sql database.engine"},
		{name: "unknown kv", db: "memory", kv: "etcd", wantErr: `unsupported kv engine "etcd"`},
		{name: "unknown database", db: "mongo", kv: "memory", wantErr: `unsupported database engine "mongo"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &core.Config{
				KVEngine: tt.kv,
				Database: core.DatabaseConfig{Engine: tt.db},
				Redis:    core.RedisConfig{Addr: mr.Addr()},
			}
			if tt.db == "sqlite" {
				conf.Database.DSN = ":memory:"
			}

			st, err := Open(ctx, conf)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer func() { assert.NoError(t, st.Close()) }()

			assert.Equal(t, tt.wantDB, st.DB != nil)
			require.NoError(t, st.KV.Set(ctx, "k", "v"))
			got, err := st.KV.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v", got)

			all, err := st.Students.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}
