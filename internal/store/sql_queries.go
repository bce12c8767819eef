// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

const treesTable = "trees"

func buildSelectTreeQuery(b sq.StatementBuilderType, path string) (string, []any, error) {
	query, args, err := b.
		Select("body").
		From(treesTable).
		Where(sq.Eq{"path": path}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpsertTreeQuery(b sq.StatementBuilderType, path, body string) (string, []any, error) {
	query, args, err := b.
		Insert(treesTable).
		Columns("path", "body", "updated_at").
		Values(path, body, sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT (path) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteTreeQuery(b sq.StatementBuilderType, path string) (string, []any, error) {
	query, args, err := b.
		Delete(treesTable).
		Where(sq.Or{
			sq.Eq{"path": path},
			sq.Expr(`path LIKE ? ESCAPE '\'`, escapeLike(path)+"/%"),
		}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// normalizePath drops empty segments so "a//b/" and "a/b" share a row.
func normalizePath(path string) string {
	parts := strings.Split(path, "/")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
