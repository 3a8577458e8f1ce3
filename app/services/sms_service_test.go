package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSMSServiceRecordsSends(t *testing.T) {
	mock := NewMockSMSService()

	id1, err := mock.Send(context.Background(), "+15550000001", "first")
	require.NoError(t, err)
	id2, err := mock.Send(context.Background(), "+15550000002", "second")
	require.NoError(t, err)

	// Provider ids are deterministic per instance and never reused.
	assert.Equal(t, "mock-1", id1)
	assert.Equal(t, "mock-2", id2)

	sent := mock.GetSentMessages()
	require.Len(t, sent, 2)
	assert.Equal(t, "+15550000001", sent[0].Recipient)
	assert.Equal(t, "first", sent[0].Body)
	assert.False(t, sent[0].SentAt.IsZero())
}

func TestMockSMSServiceForcedFailure(t *testing.T) {
	mock := NewMockSMSService()
	forced := errors.New("provider rejected")
	mock.FailFor["+15550000001"] = forced

	_, err := mock.Send(context.Background(), "+15550000001", "doomed")
	assert.ErrorIs(t, err, forced)

	// The failed attempt is not recorded as a send.
	assert.Empty(t, mock.GetSentMessages())

	// Other recipients are unaffected.
	_, err = mock.Send(context.Background(), "+15550000002", "fine")
	assert.NoError(t, err)
	assert.Len(t, mock.GetSentMessages(), 1)
}

func TestMockSMSServiceClear(t *testing.T) {
	mock := NewMockSMSService()
	_, err := mock.Send(context.Background(), "+15550000001", "hello")
	require.NoError(t, err)

	mock.ClearSentMessages()
	assert.Empty(t, mock.GetSentMessages())

	// Ids keep counting up after a clear.
	id, err := mock.Send(context.Background(), "+15550000001", "again")
	require.NoError(t, err)
	assert.Equal(t, "mock-2", id)
}

func TestMockSMSServiceName(t *testing.T) {
	mock := NewMockSMSService()
	assert.Equal(t, "mock", mock.Name())
}
