package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huddle-relay-server/domain"
)

var (
	alice = domain.User{ID: "c1", Name: "Alice"}
	bob   = domain.User{ID: "c2", Name: "Bob"}
	carol = domain.User{ID: "c3", Name: "Carol"}
)

func TestGroups_Create(t *testing.T) {
	dispatcher := newMockDispatcher()
	s := NewGroups(dispatcher)

	group, err := s.Create("Alice", "Team", []domain.User{alice, bob, alice})

	require.NoError(t, err)
	assert.Equal(t, "Team", group.Name)
	assert.Equal(t, "Alice", group.CreatedBy)
	assert.Equal(t, []domain.User{alice, bob}, group.Members)
	assert.Empty(t, group.Messages)
	assert.Equal(t, 1, s.Count())

	broadcasts := dispatcher.getBroadcasts()
	require.Len(t, broadcasts, 1)
	assert.Equal(t, domain.EventGroupCreated, broadcasts[0].event)
	created := broadcasts[0].payload.(domain.GroupCreated)
	assert.Equal(t, group.ID, created.GroupID)
	assert.Equal(t, "Team", created.Name)
	assert.Equal(t, []domain.User{alice, bob}, created.Members)
}

func TestGroups_CreateRejectsEmptyName(t *testing.T) {
	dispatcher := newMockDispatcher()
	s := NewGroups(dispatcher)

	_, err := s.Create("Alice", "  ", nil)

	assert.ErrorIs(t, err, ErrEmptyGroupName)
	assert.Zero(t, s.Count())
	assert.Empty(t, dispatcher.getBroadcasts())
}

func TestGroups_CreateAssignsUniqueIDs(t *testing.T) {
	s := NewGroups(newMockDispatcher())

	first, err := s.Create("Alice", "Team", nil)
	require.NoError(t, err)
	second, err := s.Create("Alice", "Team", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, s.Count())
}

func TestGroups_Post(t *testing.T) {
	tests := []struct {
		name          string
		groupID       func(created string) string
		text          string
		wantErr       error
		wantLogLength int
	}{
		{
			name:          "existing group",
			groupID:       func(created string) string { return created },
			text:          "hello team",
			wantLogLength: 1,
		},
		{
			name:    "unknown group",
			groupID: func(string) string { return "nope" },
			text:    "hello",
			wantErr: ErrUnknownGroup,
		},
		{
			name:    "invalid text",
			groupID: func(created string) string { return created },
			text:    "",
			wantErr: ErrEmptyText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := newMockDispatcher()
			s := NewGroups(dispatcher)
			group, err := s.Create("Alice", "Team", []domain.User{alice, bob})
			require.NoError(t, err)

			msg, err := s.Post(tt.groupID(group.ID), bob.ID, bob.Name, tt.text)

			stored, _ := s.Get(group.ID)
			assert.Len(t, stored.Messages, tt.wantLogLength)
			broadcasts := dispatcher.getBroadcasts()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, broadcasts, 1)
				return
			}
			require.NoError(t, err)
			require.Len(t, broadcasts, 2)
			assert.Equal(t, domain.EventNewGroupMessage, broadcasts[1].event)
			assert.Equal(t, domain.GroupMessage{GroupID: group.ID, Message: msg}, broadcasts[1].payload)
		})
	}
}

func TestGroups_JoinIsIdempotent(t *testing.T) {
	dispatcher := newMockDispatcher()
	s := NewGroups(dispatcher)
	group, err := s.Create("Alice", "Team", []domain.User{alice, bob})
	require.NoError(t, err)

	joined, err := s.Join(group.ID, carol)
	require.NoError(t, err)
	assert.True(t, joined)

	joined, err = s.Join(group.ID, carol)
	require.NoError(t, err)
	assert.False(t, joined)

	stored, _ := s.Get(group.ID)
	assert.Equal(t, []domain.User{alice, bob, carol}, stored.Members)

	broadcasts := dispatcher.getBroadcasts()
	require.Len(t, broadcasts, 2)
	assert.Equal(t, domain.EventGroupJoined, broadcasts[1].event)
}

func TestGroups_JoinUnknownGroup(t *testing.T) {
	s := NewGroups(newMockDispatcher())

	joined, err := s.Join("nope", carol)

	assert.ErrorIs(t, err, ErrUnknownGroup)
	assert.False(t, joined)
}
