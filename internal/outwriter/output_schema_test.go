package outwriter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/huangsam/reportboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSchemaResults(t *testing.T) {
	summary := testSession(t).Summary()

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSchemaResults(&buf, summary, testConfig(schema.TextOut)))
		out := buf.String()
		assert.Contains(t, out, "responseTime")
		assert.Contains(t, out, "latency")
		assert.Contains(t, out, "4 records from logs.csv, 1 issue(s)")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSchemaResults(&buf, summary, testConfig(schema.CSVOut)))
		assert.Equal(t, "header,key,kind,role\n"+
			"date,date,date,date\n"+
			"category,category,category,category\n"+
			"status,status,plain,status\n"+
			"responseTime,responsetime,numeric,latency\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteSchemaResults(&buf, summary, testConfig(schema.JSONOut)))
		var decoded schema.ImportSummary
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, summary.Fields, decoded.Fields)
		assert.Equal(t, summary.Roles, decoded.Roles)
	})
}

func TestRoleOf(t *testing.T) {
	roles := schema.FieldRoles{Date: "day", Category: "type", Status: "status"}
	assert.Equal(t, "date", roleOf("day", roles))
	assert.Equal(t, "category", roleOf("type", roles))
	assert.Equal(t, "", roleOf("name", roles))
	assert.Equal(t, "", roleOf("", roles))
}
