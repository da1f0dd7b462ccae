package realtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"event":"joinChannel","data":{"channelId":"c1","username":"alice"}}`))
	require.NoError(t, err)
	require.Equal(t, EventJoinChannel, env.Event)
	require.JSONEq(t, `{"channelId":"c1","username":"alice"}`, string(env.Data))
}

func TestDecodeEnvelope_Malformed(t *testing.T) {
	_, err := DecodeEnvelope([]byte(`{"event":`))
	require.Error(t, err)
}

func TestDecodeEnvelope_MissingDataIsTolerated(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"event":"endCall"}`))
	require.NoError(t, err)
	require.Equal(t, EventEndCall, env.Event)
	require.Empty(t, env.Data)
}

func TestEncode_RoundTrip(t *testing.T) {
	raw, err := Encode(EventMembersUpdate, []string{"alice", "bob"})
	require.NoError(t, err)

	env, err := DecodeEnvelope(raw)
	require.NoError(t, err)
	require.Equal(t, EventMembersUpdate, env.Event)
	require.JSONEq(t, `["alice","bob"]`, string(env.Data))
}
