// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	dollar   = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	question = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

func Test_buildSelectTreeQuery(t *testing.T) {
	query, args, err := buildSelectTreeQuery(dollar, "a/b")
	require.NoError(t, err)

	assert.Equal(t, "SELECT body FROM trees WHERE path = $1", query)
	assert.Equal(t, []any{"a/b"}, args)
}

func Test_buildUpsertTreeQuery_Placeholders(t *testing.T) {
	tests := []struct {
		name    string
		builder sq.StatementBuilderType
		want    string
	}{
		{name: "postgres", builder: dollar, want: "VALUES ($1,$2,CURRENT_TIMESTAMP)"},
		{name: "sqlite", builder: question, want: "VALUES (?,?,CURRENT_TIMESTAMP)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildUpsertTreeQuery(tt.builder, "a", `{"x":1}`)
			require.NoError(t, err)

			q := strings.ToLower(query)
			require.Contains(t, q, "insert into trees")
			require.Contains(t, q, "on conflict (path) do update")
			assert.Contains(t, query, tt.want)
			assert.Equal(t, []any{"a", `{"x":1}`}, args)
		})
	}
}

func Test_buildDeleteTreeQuery_CoversDescendants(t *testing.T) {
	query, args, err := buildDeleteTreeQuery(dollar, "a_b/c%")
	require.NoError(t, err)

	assert.Contains(t, query, "DELETE FROM trees WHERE")
	assert.Contains(t, query, "path = $1")
	assert.Contains(t, query, "path LIKE $2 ESCAPE")
	assert.Equal(t, []any{"a_b/c%", `a\_b/c\%/%`}, args)
}

func Test_normalizePath(t *testing.T) {
	assert.Equal(t, "a/b", normalizePath("/a//b/"))
	assert.Equal(t, "", normalizePath("///"))
	assert.Equal(t, "root", normalizePath("root"))
}
