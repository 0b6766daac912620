package output

import (
	"bytes"
	"testing"

	"github.com/dmitrijs2005/hustleadmin/internal/client/models"
	"github.com/dmitrijs2005/hustleadmin/internal/client/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_PlainOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false)

	p.Success("saved %d", 2)
	p.Info("page %d of %d", 1, 3)
	p.Error("failed")
	p.Header("Workers")

	assert.Contains(t, out.String(), "[OK] saved 2\n")
	assert.Contains(t, out.String(), "page 1 of 3\n")
	assert.Contains(t, out.String(), "\nWorkers\n-------\n")
	assert.Equal(t, "[ERROR] failed\n", errOut.String())
}

func TestPrinter_Notification(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false)

	p.Notification(notify.Notification{Kind: notify.KindSuccess, Message: "KYC approved"})
	p.Notification(notify.Notification{Kind: notify.KindError, Message: "Failed to fetch data"})

	assert.Equal(t, "[OK] KYC approved\n", out.String())
	assert.Equal(t, "[ERROR] Failed to fetch data\n", errOut.String())
}

func TestColorsEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorsEnabled())
}

func TestRenderRows(t *testing.T) {
	var buf bytes.Buffer
	rows := []models.Worker{
		{ID: "u1", FirstName: "Ada", Email: "ada@x.io", Status: true},
		{ID: "u2", FirstName: "Bola", Email: "bola@x.io"},
	}

	require.NoError(t, RenderRows(&buf, rows, "No workers found"))

	s := buf.String()
	assert.Contains(t, s, "ada@x.io")
	assert.Contains(t, s, "bola@x.io")
	assert.Contains(t, s, "Suspended")
	assert.Contains(t, s, "EMAIL")
}

func TestRenderRows_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderRows(&buf, []models.Task{}, "No tasks found"))
	assert.Equal(t, "No tasks found\n", buf.String())
}

func TestRenderFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderFields(&buf, [][2]string{{"Subject", "Payout delay"}}))
	assert.Contains(t, buf.String(), "Payout delay")
}
