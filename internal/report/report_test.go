package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"office-asset-web/internal/model"
)

func TestWrite(t *testing.T) {
	rows := []model.AssetReportRow{
		{Category: "Laptop", Total: 10, Assigned: 4, Available: 3, NotAvailable: 1, WaitingForRecycling: 1, Recycled: 1},
		{Category: "Monitor", Total: 2, Available: 2},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, Headers, got[0])
	assert.Equal(t, []string{"Laptop", "10", "4", "3", "1", "1", "1"}, got[1])
	assert.Equal(t, []string{"Monitor", "2", "0", "2", "0", "0", "0"}, got[2])
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "OAM Report 2026-10-15.xlsx", Filename("2026-10-15"))
}
