package storage

import (
	"fmt"
	"strings"
)

// schemaStatements create the tables and functions of the service, if not already there
var schemaStatements = []string{
	`create extension if not exists pgcrypto`,
	`create schema if not exists snt`,
	`create table if not exists snt.users (
		user_login text primary key,
		user_hash text not null,
		user_secret text not null,
		user_active bool not null default true,
		user_creator text,
		user_updated timestamp without time zone not null default now()
	)`,
	`create table if not exists snt.tables (
		table_key text primary key,
		table_title text,
		table_version text,
		table_identifier text,
		table_base_uri text not null,
		table_names_count int not null default 0,
		table_document jsonb not null,
		table_creator text,
		table_updated timestamp without time zone not null default now()
	)`,
	`create or replace function snt.test_user_password(p_login text, p_password text) returns bool
	language sql stable as $$
		select coalesce((
			select USR.user_hash = crypt(p_password, USR.user_hash)
			from snt.users USR
			where USR.user_login = p_login and USR.user_active
		), false)
	$$`,
	`create or replace function snt.find_secret_for_user(p_login text) returns text
	language sql stable as $$
		select USR.user_secret from snt.users USR where USR.user_login = p_login and USR.user_active
	$$`,
	`create or replace procedure snt.upsert_user(p_creator text, p_login text, p_password text, p_secret text)
	language sql as $$
		insert into snt.users(user_login, user_hash, user_secret, user_creator)
		values (p_login, crypt(p_password, gen_salt('bf')), p_secret, p_creator)
		on conflict (user_login) do update
		set user_hash = excluded.user_hash, user_secret = excluded.user_secret,
		user_creator = excluded.user_creator, user_active = true, user_updated = now()
	$$`,
}

const queryUpsertTable = `
	insert into snt.tables(table_key, table_title, table_version, table_identifier, table_base_uri,
		table_names_count, table_document, table_creator, table_updated)
	values ($1, $2, $3, $4, $5, $6, $7, $8, now())
	on conflict (table_key) do update
	set table_title = excluded.table_title, table_version = excluded.table_version,
	table_identifier = excluded.table_identifier, table_base_uri = excluded.table_base_uri,
	table_names_count = excluded.table_names_count, table_document = excluded.table_document,
	table_creator = excluded.table_creator, table_updated = now()
	`

const queryLoadTable = `
	select TAB.table_document, TAB.table_base_uri
	from snt.tables TAB
	where TAB.table_key = $1
	`

const queryDeleteTable = `delete from snt.tables where table_key = $1`

// queryForTableSummaries returns the query listing tables and its parameters.
// Tables may be filtered by a part of their title, case insensitive
func queryForTableSummaries(titleFilter string) (string, []any) {
	base := `
	select TAB.table_key, coalesce(TAB.table_title, ''), coalesce(TAB.table_version, ''),
	coalesce(TAB.table_identifier, ''), TAB.table_base_uri, TAB.table_names_count, TAB.table_updated
	from snt.tables TAB
	%s
	order by TAB.table_key
	`

	filter := strings.TrimSpace(titleFilter)
	if filter == "" {
		return fmt.Sprintf(base, ""), nil
	}

	return fmt.Sprintf(base, "where TAB.table_title ilike $1"), []any{"%" + escapeLike(filter) + "%"}
}

// escapeLike escapes the wildcards of a like pattern
func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
