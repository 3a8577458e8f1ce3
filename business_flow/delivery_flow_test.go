package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwave/shiftwave/app/dto"
	"github.com/shiftwave/shiftwave/models"
	apptest "github.com/shiftwave/shiftwave/testing"
	"github.com/shiftwave/shiftwave/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deliveryTestMessage(t *testing.T, f *apptest.Fixtures, providerID string) *models.Message {
	t.Helper()
	queued := models.DeliveryStatusQueued
	m := &models.Message{
		UUID:              uuid.New(),
		Direction:         models.MessageDirectionOutbound,
		ToPhone:           "+15550000001",
		FromPhone:         "+15550009999",
		Body:              "test",
		SegmentCount:      1,
		Status:            models.MessageStatusSent,
		DeliveryStatus:    &queued,
		ProviderMessageID: &providerID,
		MessageType:       models.MessageTypeShiftNotification,
	}
	require.NoError(t, f.Messages.Save(context.Background(), m))
	return m
}

func TestReconcileAppliesUpdate(t *testing.T) {
	f := apptest.NewFixtures()
	flow := NewDeliveryFlow(f.Messages, f.Employees)
	m := deliveryTestMessage(t, f, "prov-1")

	err := flow.Reconcile(context.Background(), &dto.DeliveryCallbackRequest{
		ProviderMessageID: "prov-1",
		Status:            "delivered",
		Timestamp:         "2026-08-31T10:00:00Z",
	})
	require.NoError(t, err)

	stored, err := f.Messages.ByID(context.Background(), m.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DeliveryStatus)
	assert.Equal(t, models.DeliveryStatusDelivered, *stored.DeliveryStatus)
	require.NotNil(t, stored.DeliveryUpdatedAt)
	assert.Equal(t, time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC), stored.DeliveryUpdatedAt.UTC())
}

func TestReconcileOutOfOrderCallbackSkipped(t *testing.T) {
	f := apptest.NewFixtures()
	flow := NewDeliveryFlow(f.Messages, f.Employees)
	m := deliveryTestMessage(t, f, "prov-1")

	// Later provider timestamp lands first.
	require.NoError(t, flow.Reconcile(context.Background(), &dto.DeliveryCallbackRequest{
		ProviderMessageID: "prov-1",
		Status:            "sent",
		Timestamp:         "2026-08-31T10:05:00Z",
	}))

	// The earlier one arrives afterwards and must not regress the status.
	require.NoError(t, flow.Reconcile(context.Background(), &dto.DeliveryCallbackRequest{
		ProviderMessageID: "prov-1",
		Status:            "queued",
		Timestamp:         "2026-08-31T10:00:00Z",
	}))

	stored, err := f.Messages.ByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryStatusSent, *stored.DeliveryStatus)
	assert.Equal(t, time.Date(2026, 8, 31, 10, 5, 0, 0, time.UTC), stored.DeliveryUpdatedAt.UTC())
}

func TestReconcileTerminalStatusSticks(t *testing.T) {
	f := apptest.NewFixtures()
	flow := NewDeliveryFlow(f.Messages, f.Employees)
	m := deliveryTestMessage(t, f, "prov-1")

	require.NoError(t, flow.Reconcile(context.Background(), &dto.DeliveryCallbackRequest{
		ProviderMessageID: "prov-1",
		Status:            "delivered",
		Timestamp:         "2026-08-31T10:00:00Z",
	}))

	// A later non-terminal callback cannot overwrite a terminal state.
	require.NoError(t, flow.Reconcile(context.Background(), &dto.DeliveryCallbackRequest{
		ProviderMessageID: "prov-1",
		Status:            "sent",
		Timestamp:         "2026-08-31T11:00:00Z",
	}))

	stored, err := f.Messages.ByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryStatusDelivered, *stored.DeliveryStatus)
}

func TestReconcileRecordsProviderError(t *testing.T) {
	f := apptest.NewFixtures()
	flow := NewDeliveryFlow(f.Messages, f.Employees)
	m := deliveryTestMessage(t, f, "prov-1")

	err := flow.Reconcile(context.Background(), &dto.DeliveryCallbackRequest{
		ProviderMessageID: "prov-1",
		Status:            "undelivered",
		Timestamp:         "2026-08-31T10:00:00Z",
		ErrorCode:         utils.ToPtr("30003"),
		ErrorMessage:      utils.ToPtr("Unreachable destination handset"),
	})
	require.NoError(t, err)

	stored, err := f.Messages.ByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryStatusUndelivered, *stored.DeliveryStatus)
	require.NotNil(t, stored.ErrorCode)
	assert.Equal(t, "30003", *stored.ErrorCode)
}

func TestReconcileUnknownProviderIDDropped(t *testing.T) {
	f := apptest.NewFixtures()
	flow := NewDeliveryFlow(f.Messages, f.Employees)

	// Unknown or expired provider id is not a client error.
	err := flow.Reconcile(context.Background(), &dto.DeliveryCallbackRequest{
		ProviderMessageID: "never-seen",
		Status:            "delivered",
		Timestamp:         "2026-08-31T10:00:00Z",
	})
	assert.NoError(t, err)
}

func TestReconcileUnparseableTimestamp(t *testing.T) {
	f := apptest.NewFixtures()
	flow := NewDeliveryFlow(f.Messages, f.Employees)
	deliveryTestMessage(t, f, "prov-1")

	err := flow.Reconcile(context.Background(), &dto.DeliveryCallbackRequest{
		ProviderMessageID: "prov-1",
		Status:            "delivered",
		Timestamp:         "yesterday at noon",
	})
	require.Error(t, err)
	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "INVALID_CALLBACK", be.Code)
}

func TestIngestInboundLinksEmployee(t *testing.T) {
	f := apptest.NewFixtures()
	flow := NewDeliveryFlow(f.Messages, f.Employees)

	nurse := f.CreatePosition("Nurse")
	employee := f.CreateEmployee("+15550000001", nurse.ID)

	err := flow.IngestInbound(context.Background(), &dto.InboundMessageRequest{
		ProviderMessageID: "in-1",
		From:              "(555) 000-0001", // roster format differs, key matches
		To:                "+15550009999",
		Body:              "Yes, I'll take it",
	})
	require.NoError(t, err)

	stored, err := f.Messages.ByProviderMessageID(context.Background(), "in-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.MessageDirectionInbound, stored.Direction)
	assert.Equal(t, models.MessageStatusReceived, stored.Status)
	assert.Equal(t, models.MessageTypeInbound, stored.MessageType)
	require.NotNil(t, stored.EmployeeID)
	assert.Equal(t, employee.ID, *stored.EmployeeID)
}

func TestIngestInboundUnknownSenderStillRecorded(t *testing.T) {
	f := apptest.NewFixtures()
	flow := NewDeliveryFlow(f.Messages, f.Employees)

	err := flow.IngestInbound(context.Background(), &dto.InboundMessageRequest{
		ProviderMessageID: "in-2",
		From:              "+15559999999",
		To:                "+15550009999",
		Body:              "Who is this?",
	})
	require.NoError(t, err)

	stored, err := f.Messages.ByProviderMessageID(context.Background(), "in-2")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Nil(t, stored.EmployeeID)
}

func TestIngestInboundUnnormalizableSender(t *testing.T) {
	f := apptest.NewFixtures()
	flow := NewDeliveryFlow(f.Messages, f.Employees)

	err := flow.IngestInbound(context.Background(), &dto.InboundMessageRequest{
		ProviderMessageID: "in-3",
		From:              "not-a-phone",
		To:                "+15550009999",
		Body:              "hi",
	})
	require.Error(t, err)
	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "INVALID_INBOUND", be.Code)
}
