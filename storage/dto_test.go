package storage_test

import (
	"testing"
	"time"

	"github.com/zefrenchwan/standardnames.git/nodes"
	"github.com/zefrenchwan/standardnames.git/storage"
	"github.com/zefrenchwan/standardnames.git/tables"
)

func TestStandardNameDTO(t *testing.T) {
	table := tables.NewTable(tables.Metadata{Title: "dto", Identifier: "https://example.org/dto"})
	standardName, _ := nodes.NewStandardName("velocity", "m s-1", "the velocity", nodes.Vector)
	if err := table.AddStandardName(standardName); err != nil {
		t.Fatalf("failing add %s", err.Error())
	}

	stored, _ := table.GetStandardName("velocity")
	dto := storage.NewStandardNameDTO(table, stored)
	if dto.UnitSymbol != "m/s" {
		t.Errorf("expecting m/s, got %s", dto.UnitSymbol)
	} else if dto.Kind != "vector" || storage.ParseKind(dto.Kind) != nodes.Vector {
		t.Errorf("invalid kind %s", dto.Kind)
	} else if dto.Table != "https://example.org/dto" {
		t.Fail()
	} else if dto.UnitWarning {
		t.Fail()
	}

	if storage.ParseKind("whatever") != nodes.Untagged {
		t.Fail()
	}
}

func TestTableSummaryDTO(t *testing.T) {
	table := tables.NewTable(tables.Metadata{Title: "summary", Version: "2"})
	now := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	summary := storage.NewTableSummaryDTO("key", table, "https://example.org/", now)
	if summary.UpdatedAt != "2024-03-01T12:30:00" {
		t.Errorf("invalid date %s", summary.UpdatedAt)
	} else if summary.StandardNames != 0 || summary.Title != "summary" || summary.Id != "key" {
		t.Fail()
	}

	if storage.NewTableSummaryDTO("key", table, "", time.Time{}).UpdatedAt != "" {
		t.Fail()
	}
}
