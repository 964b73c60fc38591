package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/playbook-cli/internal/model"
)

func TestWriteWorkbook(t *testing.T) {
	pbs := []model.CSPlaybook{
		samplePlaybook(t, model.ScenarioRenewalRisk),
		samplePlaybook(t, "something_new"),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, pbs))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	summary, ok := f.Sheet[SheetPlaybooks]
	require.True(t, ok)
	require.Len(t, summary.Rows, 3)
	assert.Equal(t, "Customer", summary.Rows[0].Cells[0].String())
	assert.Equal(t, "Acme", summary.Rows[1].Cells[0].String())
	assert.Equal(t, "Renewal Risk", summary.Rows[1].Cells[1].String())
	assert.Equal(t, "8", summary.Rows[1].Cells[3].String())
	assert.Equal(t, "Custom Scenario", summary.Rows[2].Cells[1].String())

	actions, ok := f.Sheet[SheetActions]
	require.True(t, ok)
	assert.Len(t, actions.Rows, 1+len(pbs[0].ActionPlan)+len(pbs[1].ActionPlan))
	assert.Equal(t, "HIGH", actions.Rows[1].Cells[1].String())
}

func TestWriteWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, nil))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)
	assert.Len(t, f.Sheets[0].Rows, 1)
}
