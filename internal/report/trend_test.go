package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"fjacquet/split-insights/internal/batch"
	"fjacquet/split-insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrend() []batch.MonthSummary {
	return []batch.MonthSummary{
		{Month: "2024-01", Total: decimal.NewFromInt(12), Count: 1,
			TopCategory: models.CategoryEntertainment, TopCategoryShare: 100},
		{Month: "2024-02", Total: decimal.NewFromInt(72), Count: 2,
			TopCategory: models.CategoryGroceries, TopCategoryShare: 83.3, RecurringCount: 1,
			BudgetStatus: models.StatusOnTrack, BudgetPercentage: 7.2},
	}
}

func TestRenderTrend_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newGenerator().RenderTrend(&buf, sampleTrend(), "USD", FormatText))

	out := buf.String()
	assert.Contains(t, out, "SPENDING TREND")
	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "$ 72.00")
	assert.Contains(t, out, "Groceries (83.3%)")
	assert.Contains(t, out, "7.2% on_track")
}

func TestRenderTrend_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newGenerator().RenderTrend(&buf, nil, "", FormatText))
	assert.Contains(t, buf.String(), "No months selected.")

	buf.Reset()
	require.NoError(t, newGenerator().RenderTrend(&buf, nil, "", FormatJSON))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestRenderTrend_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newGenerator().RenderTrend(&buf, sampleTrend(), "USD", FormatJSON))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "2024-02", decoded[1]["month"])
	assert.Equal(t, "on_track", decoded[1]["budgetStatus"])
	_, hasBudget := decoded[0]["budgetStatus"]
	assert.False(t, hasBudget)
}

func TestRenderTrend_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newGenerator().RenderTrend(&buf, sampleTrend(), "USD", FormatCSV))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "month,total,count,top_category,top_category_share,recurring_count,budget_status,budget_percentage", lines[0])
	assert.Equal(t, "2024-02,72,2,Groceries,83.3,1,on_track,7.2", lines[2])
}

func TestRenderTrend_UnsupportedFormat(t *testing.T) {
	err := newGenerator().RenderTrend(&bytes.Buffer{}, nil, "", Format("xml"))
	assert.ErrorContains(t, err, "unsupported report format")
}
